package model

// AssetCategory classifies an upload by what part of a venue page it belongs
// to. The category decides the resize bounding box and the starting encode
// quality.
type AssetCategory string

const (
	CategoryLogo    AssetCategory = "logo"
	CategoryCover   AssetCategory = "cover"
	CategoryBanner  AssetCategory = "banner"
	CategoryGallery AssetCategory = "gallery"
	CategoryDefault AssetCategory = "default"
)

func (c AssetCategory) String() string {
	return string(c)
}
