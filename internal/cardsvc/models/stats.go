package models

import "time"

type IssuerCount struct {
	Issuer string `bson:"_id" json:"issuer"`
	Count  int64  `bson:"count" json:"count"`
}

type TagCount struct {
	Tag   string `bson:"_id" json:"tag"`
	Count int64  `bson:"count" json:"count"`
}

type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

type IssuerStats struct {
	Total   int           `json:"total"`
	Details []IssuerCount `json:"details"`
}

type TagStats struct {
	Total   int        `json:"total"`
	Details []TagCount `json:"details"`
}

type BenefitStats struct {
	Total   int             `json:"total"`
	Details []CategoryCount `json:"details"`
}

// Stats is the aggregate view over the whole catalog. Issuer counts always
// sum to TotalCards; tag and benefit counts are multiset counts, one
// contribution per tag/benefit instance.
type Stats struct {
	TotalCards  int64        `json:"total_cards"`
	Issuers     IssuerStats  `json:"issuers"`
	Tags        TagStats     `json:"tags"`
	Benefits    BenefitStats `json:"benefits"`
	LastUpdated time.Time    `json:"last_updated"`
}
