package catalog

// ImageSize is an IGDB image size token. See https://api-docs.igdb.com/#images.
type ImageSize string

// Image sizes with their pixel dimensions.
const (
	CoverSmall     ImageSize = "cover_small"     // 90 x 128
	ScreenshotMed  ImageSize = "screenshot_med"  // 569 x 320
	CoverBig       ImageSize = "cover_big"       // 264 x 374
	LogoMed        ImageSize = "logo_med"        // 284 x 160
	ScreenshotBig  ImageSize = "screenshot_big"  // 889 x 500
	ScreenshotHuge ImageSize = "screenshot_huge" // 1280 x 720
	Thumb          ImageSize = "thumb"           // 90 x 90
	Micro          ImageSize = "micro"           // 35 x 35
	HD720          ImageSize = "720p"            // 1280 x 720
	HD1080         ImageSize = "1080p"           // 1920 x 1080
)

const imageBaseURL = "https://images.igdb.com/igdb/image/upload/"

// ImageURL returns the JPEG URL of an image at the given size, or "" if imageID is empty.
func ImageURL(size ImageSize, imageID string) string {
	if imageID == "" {
		return ""
	}
	return imageBaseURL + "t_" + string(size) + "/" + imageID + ".jpg"
}

// URL returns the image URL at the given size. It is safe on a nil *Image.
func (i *Image) URL(size ImageSize) string {
	if i == nil {
		return ""
	}
	return ImageURL(size, i.ImageID)
}
