package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrgSettings carries the signer identity and branding used when rendering
// certificate documents. A single active row is expected.
type OrgSettings struct {
	gorm.Model
	IssuerName     string         `json:"issuer_name" gorm:"default:''"`
	SignerName     string         `json:"signer_name" gorm:"default:''"`
	SignerImageURL string         `json:"signer_image_url" gorm:"default:''"`
	Branding       datatypes.JSON `json:"branding"` // logo URLs, colors, template options
	IsDeleted      bool           `gorm:"default:false"`
}
