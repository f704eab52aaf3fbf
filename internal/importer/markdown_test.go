package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarkdown = `# 十一月信用卡優惠

### <<< 台新 Richart 卡 >>>
* 活動期間：2025/11/01 ~ 2025/11/30
* 回饋類型：最高3.3%
* 數趣刷 momo、蝦皮 3.3%回饋
* 排除項目：
  * 保費
  * 學費

<<< 玉山 UBear 卡 >>>
* 網購 3% 回饋
* 含 PChome、蝦皮

some trailing text without a heading
`

func TestParseMarkdownSections(t *testing.T) {
	sections := ParseMarkdown(sampleMarkdown)
	require.Len(t, sections, 2)

	assert.Equal(t, "台新 Richart 卡", sections[0].CardName)
	assert.Equal(t, "玉山 UBear 卡", sections[1].CardName)

	// heading line is kept in the raw text, blank lines are dropped from content
	assert.Contains(t, sections[0].RawLines[0], "<<<")
	for _, line := range sections[0].Content {
		assert.NotEmpty(t, line)
	}
	// trailing prose belongs to the last section
	assert.Contains(t, sections[1].Content, "some trailing text without a heading")
}

func TestParseMarkdownNoHeadings(t *testing.T) {
	assert.Empty(t, ParseMarkdown("just some text\nwithout any card headings"))
}

func TestExtractCardNameFormats(t *testing.T) {
	assert.Equal(t, "國泰 CUBE 卡", extractCardName("### <<< 國泰 CUBE 卡 >>>"))
	assert.Equal(t, "滙豐 Live+", extractCardName("**<<<滙豐 Live+>>>**"))
	assert.Equal(t, "", extractCardName("## 一般標題"))
}

func TestExtractIssuer(t *testing.T) {
	tests := []struct {
		cardName string
		want     string
	}{
		{"台新 Richart 卡", "台新"},
		{"Richart 數位卡", "台新"},
		{"永豐 DAWHO 卡", "永豐"},
		{"玉山 Unicard", "玉山"},
		{"國泰世華 CUBE 卡", "國泰世華"},
		{"滙豐 Live+ 現金回饋卡", "匯豐"},
		{"聯邦吉鶴卡", "聯邦"},
		{"不知名銀行卡", "未知"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractIssuer(tt.cardName), tt.cardName)
	}
}

func TestExtractTags(t *testing.T) {
	content := []string{
		"數趣刷 momo、蝦皮 3.3%回饋",
		"Netflix、Spotify 影音訂閱",
		"加油站中油直營 5%",
	}

	tags := ExtractTags(content)
	assert.Contains(t, tags, "網購")
	assert.Contains(t, tags, "影音")
	assert.Contains(t, tags, "交通")
	assert.NotContains(t, tags, "保險")
}

func TestExtractTagsCaseInsensitive(t *testing.T) {
	assert.Contains(t, ExtractTags([]string{"MOMO 購物節"}), "網購")
}

func TestParseBenefits(t *testing.T) {
	content := []string{
		"活動期間：2025/11/01 ~ 2025/11/30",
		"回饋類型：最高3.3%",
		"momo 網購 3.3% 回饋",
		"排除項目：",
		"* 保費",
		"* 學費",
	}

	benefits, activityPeriod, exclusions := ParseBenefits(content)

	require.Len(t, benefits, 1)
	assert.Equal(t, "綜合回饋", benefits[0].Category)
	assert.Equal(t, "最高3.3%", benefits[0].RewardRate)
	assert.Equal(t, "2025/11/01 ~ 2025/11/30", benefits[0].Period)

	require.NotNil(t, activityPeriod)
	assert.Equal(t, "2025/11/01 ~ 2025/11/30", activityPeriod["note"])

	assert.Equal(t, []string{"保費", "學費"}, exclusions)
}

func TestParseBenefitsNothingToExtract(t *testing.T) {
	benefits, activityPeriod, exclusions := ParseBenefits([]string{"純文字說明，沒有任何優惠資訊"})

	assert.Empty(t, benefits)
	assert.Nil(t, activityPeriod)
	assert.Empty(t, exclusions)
}
