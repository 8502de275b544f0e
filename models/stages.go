package models

// Stage names the step of a multi-step flow an error occurred in, so callers
// can render stage-specific recovery guidance instead of a generic failure.
type Stage string

const (
	StageEncrypt   Stage = "encrypt"
	StageUpload    Stage = "upload"
	StageListing   Stage = "listing"
	StageDownload  Stage = "download"
	StageAuthorize Stage = "authorize"
	StageDecrypt   Stage = "decrypt"
)
