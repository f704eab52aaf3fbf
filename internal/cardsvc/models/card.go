package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Benefit is one reward rule of a card. Rates and caps stay free-form
// strings because banks express them inconsistently ("5%", "最高10%",
// points formulas).
type Benefit struct {
	Category   string   `bson:"category" json:"category"`
	RewardRate string   `bson:"rewardRate" json:"rewardRate"`
	Merchants  []string `bson:"merchants" json:"merchants"`   // empty means unrestricted
	Conditions []string `bson:"conditions" json:"conditions"`
	Cap        string   `bson:"cap" json:"cap"`       // empty means no cap
	Period     string   `bson:"period" json:"period"` // "*" means always
}

// ParsedData carries the raw ingested text and its derived line sequence.
type ParsedData struct {
	Content    []string `bson:"content" json:"content"`
	RawContent string   `bson:"rawContent,omitempty" json:"rawContent,omitempty"`
}

// Card is a credit-card reward record. cardName is the externally
// meaningful unique key.
type Card struct {
	ID             CardID                 `bson:"_id,omitempty" json:"_id,omitempty"`
	CardName       string                 `bson:"cardName" json:"cardName"`
	Issuer         string                 `bson:"issuer" json:"issuer"`
	Benefits       []Benefit              `bson:"benefits" json:"benefits"`
	ActivityPeriod map[string]interface{} `bson:"activityPeriod,omitempty" json:"activityPeriod,omitempty"`
	Note           string                 `bson:"note" json:"note"`
	Exclusions     []string               `bson:"exclusions" json:"exclusions"`
	Tags           []string               `bson:"tags" json:"tags"`
	FileHash       string                 `bson:"fileHash,omitempty" json:"fileHash,omitempty"`
	FileName       string                 `bson:"fileName,omitempty" json:"fileName,omitempty"`
	SourceType     string                 `bson:"sourceType" json:"sourceType"`
	ParsedData     *ParsedData            `bson:"parsedData,omitempty" json:"parsedData,omitempty"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time              `bson:"updatedAt" json:"updatedAt"`
	Version        int                    `bson:"__v" json:"__v"`
}

// CardUpdate is a partial update. Nil fields are left untouched; an update
// is a merge, never a replace.
type CardUpdate struct {
	CardName       *string                 `json:"cardName,omitempty"`
	Issuer         *string                 `json:"issuer,omitempty"`
	Benefits       *[]Benefit              `json:"benefits,omitempty"`
	ActivityPeriod *map[string]interface{} `json:"activityPeriod,omitempty"`
	Note           *string                 `json:"note,omitempty"`
	Exclusions     *[]string               `json:"exclusions,omitempty"`
	Tags           *[]string               `json:"tags,omitempty"`
}

// Fields returns the set document for the supplied fields only.
func (u CardUpdate) Fields() bson.M {
	set := bson.M{}
	if u.CardName != nil {
		set["cardName"] = *u.CardName
	}
	if u.Issuer != nil {
		set["issuer"] = *u.Issuer
	}
	if u.Benefits != nil {
		set["benefits"] = *u.Benefits
	}
	if u.ActivityPeriod != nil {
		set["activityPeriod"] = *u.ActivityPeriod
	}
	if u.Note != nil {
		set["note"] = *u.Note
	}
	if u.Exclusions != nil {
		set["exclusions"] = *u.Exclusions
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	return set
}

// FieldNames lists the supplied field names, for the audit trail.
func (u CardUpdate) FieldNames() []string {
	set := u.Fields()
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	return names
}
