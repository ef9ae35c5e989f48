package company

const DefaultWatermark = "lc_logo.png"

var watermarks = map[string]string{
	"company1": "lc_logo.png",
	"company2": "arr_logo.png",
}

// Watermark returns the background asset for a company id. Unknown ids get
// DefaultWatermark.
func Watermark(companyID string) string {
	if asset, ok := watermarks[companyID]; ok {
		return asset
	}
	return DefaultWatermark
}
