package models

type MarketingMaterial struct {
	ID         string `bson:"_id,omitempty"`
	Title      string `bson:"title"`
	AssetURL   string `bson:"assetUrl"`
	UploadedBy string `bson:"uploadedBy"`
	TimeModel  `bson:",inline"`
}
