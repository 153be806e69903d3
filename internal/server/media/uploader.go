// Package media stores profile pictures on an external media host and hands
// back stable public URLs.
package media

import "context"

// Uploader persists an image and returns its public URL. The image arrives
// from the frontend as a base64 data URL ("data:image/png;base64,...").
type Uploader interface {
	Upload(ctx context.Context, userID string, dataURL string) (string, error)
}
