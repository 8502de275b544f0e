package models

// BlobUploadResponse is the tagged response returned by the blob store on a
// write. Exactly one of NewlyCreated or AlreadyCertified is set: the store
// deduplicates by content, so re-uploading identical bytes yields the
// already-certified branch with the original blob id.
type BlobUploadResponse struct {
	NewlyCreated     *NewlyCreatedBlob     `json:"newlyCreated,omitempty"`
	AlreadyCertified *AlreadyCertifiedBlob `json:"alreadyCertified,omitempty"`
}

// NewlyCreatedBlob is the response branch for a first-time upload.
type NewlyCreatedBlob struct {
	BlobObject BlobObject `json:"blobObject"`
}

// BlobObject describes the stored blob object.
type BlobObject struct {
	BlobID string `json:"blobId"`
}

// AlreadyCertifiedBlob is the response branch for a deduplicated upload.
type AlreadyCertifiedBlob struct {
	BlobID string `json:"blobId"`
}

// BlobID returns the usable blob id regardless of which branch the store
// answered with, or an empty string if the response carries neither.
func (r BlobUploadResponse) BlobID() string {
	if r.NewlyCreated != nil {
		return r.NewlyCreated.BlobObject.BlobID
	}
	if r.AlreadyCertified != nil {
		return r.AlreadyCertified.BlobID
	}
	return ""
}
