package importer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	log "github.com/sirupsen/logrus"

	"github.com/twcards/card-services/internal/cardsvc/models"
	"github.com/twcards/card-services/internal/cardsvc/service"
)

// Importer upserts cards parsed from scraped markdown files. New cards go
// through the repository so the usual defaults and change events apply;
// re-imports update provenance and parsed fields in place and are skipped
// entirely when the source file hash is unchanged.
type Importer struct {
	cards *service.CardService
	store service.CardStore
}

func New(cards *service.CardService, store service.CardStore) *Importer {
	return &Importer{cards: cards, store: store}
}

type Result struct {
	Files   int
	Created int
	Updated int
	Skipped int
}

// ImportDir imports every .md file of dir.
func (imp *Importer) ImportDir(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read cards folder: %w", err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		result.Files++
		if err := imp.importFile(ctx, filepath.Join(dir, entry.Name()), result); err != nil {
			log.Errorf("import %s failed: %v", entry.Name(), err)
		}
	}

	return result, nil
}

func (imp *Importer) importFile(ctx context.Context, path string, result *Result) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	fileName := filepath.Base(path)
	sum := md5.Sum(content)
	fileHash := hex.EncodeToString(sum[:])

	sections := ParseMarkdown(string(content))
	if len(sections) == 0 {
		log.Warnf("%s: no card headings found", fileName)
		return nil
	}
	log.Infof("%s: found %d cards", fileName, len(sections))

	for _, sec := range sections {
		card := buildCard(sec, fileName, fileHash)
		if err := imp.upsert(ctx, card, result); err != nil {
			log.Errorf("%s: import of %q failed: %v", fileName, sec.CardName, err)
		}
	}
	return nil
}

func buildCard(sec Section, fileName, fileHash string) *models.Card {
	benefits, activityPeriod, exclusions := ParseBenefits(sec.Content)

	return &models.Card{
		CardName:       sec.CardName,
		Issuer:         ExtractIssuer(sec.CardName),
		Benefits:       benefits,
		ActivityPeriod: activityPeriod,
		Exclusions:     exclusions,
		Tags:           ExtractTags(sec.Content),
		FileHash:       fileHash,
		FileName:       fileName,
		SourceType:     "markdown",
		ParsedData: &models.ParsedData{
			Content:    sec.Content,
			RawContent: strings.Join(sec.RawLines, "\n"),
		},
	}
}

func (imp *Importer) upsert(ctx context.Context, card *models.Card, result *Result) error {
	existing, err := imp.store.FindOne(ctx, bson.M{"cardName": card.CardName})
	if err != nil {
		return fmt.Errorf("check existing card: %w", err)
	}

	if existing == nil {
		if _, err := imp.cards.Create(ctx, card); err != nil {
			return err
		}
		result.Created++
		log.Infof("created %q (%s)", card.CardName, card.Issuer)
		return nil
	}

	if existing.FileHash == card.FileHash {
		result.Skipped++
		return nil
	}

	set := bson.M{
		"issuer":         card.Issuer,
		"benefits":       card.Benefits,
		"activityPeriod": card.ActivityPeriod,
		"exclusions":     card.Exclusions,
		"tags":           card.Tags,
		"fileHash":       card.FileHash,
		"fileName":       card.FileName,
		"sourceType":     card.SourceType,
		"parsedData":     card.ParsedData,
		"updatedAt":      time.Now().UTC(),
	}
	if _, _, err := imp.store.Update(ctx, existing.ID, set); err != nil {
		return fmt.Errorf("update existing card: %w", err)
	}
	result.Updated++
	log.Infof("updated %q (%s)", card.CardName, card.Issuer)
	return nil
}
