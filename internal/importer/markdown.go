package importer

import (
	"regexp"
	"strings"

	"github.com/twcards/card-services/internal/cardsvc/models"
)

// Section is one card block of a scraped markdown file, delimited by a
// `<<< card name >>>` heading.
type Section struct {
	CardName string
	Content  []string // trimmed non-empty lines
	RawLines []string // verbatim, heading included
}

var cardNamePattern = regexp.MustCompile(`<<<\s*(.+?)\s*>>>`)

func extractCardName(line string) string {
	match := cardNamePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// ParseMarkdown splits a markdown document into card sections.
func ParseMarkdown(content string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	var current *Section

	for _, line := range lines {
		if name := extractCardName(line); name != "" {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &Section{
				CardName: name,
				RawLines: []string{line},
			}
			continue
		}
		if current != nil {
			current.RawLines = append(current.RawLines, line)
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				current.Content = append(current.Content, trimmed)
			}
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}

	return sections
}

var issuerKeywords = []struct {
	issuer   string
	keywords []string
}{
	{"台新", []string{"台新", "Richart"}},
	{"永豐", []string{"永豐", "DAWHO", "DAWAY"}},
	{"玉山", []string{"玉山", "Pi", "U Bear", "Unicard", "熊本熊"}},
	{"國泰世華", []string{"國泰世華", "CUBE"}},
	{"匯豐", []string{"匯豐", "滙豐", "匯鑽", "Live+"}},
	{"聯邦", []string{"聯邦", "LINE Bank", "吉鶴"}},
}

// ExtractIssuer maps a card name onto its issuing bank by keyword.
func ExtractIssuer(cardName string) string {
	for _, entry := range issuerKeywords {
		for _, k := range entry.keywords {
			if strings.Contains(cardName, k) {
				return entry.issuer
			}
		}
	}
	return "未知"
}

var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"網購", []string{"momo", "pchome", "蝦皮", "淘寶", "酷澎", "網購"}},
	{"影音", []string{"netflix", "disney+", "spotify", "kkbox", "youtube", "影音"}},
	{"AI工具", []string{"chatgpt", "claude", "gemini", "cursor", "notion"}},
	{"遊戲", []string{"steam", "playstation", "nintendo", "xbox", "遊戲"}},
	{"超市", []string{"全聯", "家樂福", "lopia", "超市"}},
	{"便利商店", []string{"7-eleven", "全家", "lawson", "便利商店"}},
	{"餐廳", []string{"uber eats", "foodpanda", "餐廳", "美食"}},
	{"百貨", []string{"sogo", "新光三越", "遠東", "微風", "百貨"}},
	{"交通", []string{"加油", "中油", "uber", "高鐵", "交通"}},
	{"旅遊", []string{"kkday", "klook", "agoda", "booking", "旅遊"}},
	{"日本", []string{"日本", "迪士尼", "環球影城", "suica"}},
	{"藥妝", []string{"康是美", "屈臣氏", "藥妝"}},
	{"親子", []string{"親子", "童樂匯", "嬰幼童"}},
	{"行動支付", []string{"line pay", "apple pay", "google pay"}},
	{"保險", []string{"保費", "保險"}},
	{"生活", []string{"ikea", "hola", "uniqlo", "daiso"}},
}

// ExtractTags derives tags from the section body by keyword scan.
func ExtractTags(content []string) []string {
	text := strings.ToLower(strings.Join(content, " "))

	var tags []string
	for _, entry := range tagKeywords {
		for _, k := range entry.keywords {
			if strings.Contains(text, k) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}
	return tags
}

var (
	activityPeriodPattern = regexp.MustCompile(`活動期間[：:]\s*([^\n*]+)`)
	rewardTypePattern     = regexp.MustCompile(`回饋類型[：:]\s*([^\n*]+)`)
	exclusionPattern      = regexp.MustCompile(`(?s)排除項目[：:](.*?)(?:\n\n|---|\*\*\*|$)`)
)

// ParseBenefits does a shallow extraction of the section body: one rolled-up
// benefit when reward lines are present, the activity period note, and the
// exclusion bullet list. The detailed structure comes from the upstream
// summarizer; this is the fallback for raw scraped files.
func ParseBenefits(content []string) (benefits []models.Benefit, activityPeriod map[string]interface{}, exclusions []string) {
	text := strings.Join(content, "\n")

	period := ""
	if m := activityPeriodPattern.FindStringSubmatch(text); m != nil {
		period = strings.TrimSpace(m[1])
	}

	rewardType := ""
	if m := rewardTypePattern.FindStringSubmatch(text); m != nil {
		rewardType = strings.TrimSpace(m[1])
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "%") || strings.Contains(line, "回饋") || strings.Contains(line, "折") {
			benefits = append(benefits, models.Benefit{
				Category:   "綜合回饋",
				RewardRate: rewardType,
				Merchants:  []string{},
				Conditions: []string{},
				Cap:        "",
				Period:     period,
			})
			break
		}
	}

	if period != "" {
		activityPeriod = map[string]interface{}{"note": period}
	}

	if m := exclusionPattern.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "*") {
				continue
			}
			if clean := strings.TrimSpace(strings.TrimLeft(trimmed, "* ")); clean != "" {
				exclusions = append(exclusions, clean)
			}
		}
	}

	return benefits, activityPeriod, exclusions
}
