package health

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Urgency grades how pressing the recommendations are.
type Urgency string

const (
	UrgencyNone     Urgency = "none"
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// urgencyBySeverity is indexed by BMICategory.Severity.
var urgencyBySeverity = [...]Urgency{UrgencyNone, UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

// UrgencyFor derives urgency from how far the category is from Normal.
func UrgencyFor(c BMICategory) Urgency {
	s := c.Severity()
	if s >= len(urgencyBySeverity) {
		s = len(urgencyBySeverity) - 1
	}
	return urgencyBySeverity[s]
}

// Recommendations is the ordered tip list for one calculation. Tips is the
// concatenation of the four sections in this order: category, body fat, age,
// gender.
type Recommendations struct {
	Title        string   `json:"title"`
	Urgency      Urgency  `json:"urgency"`
	Tips         []string `json:"tips"`
	CategoryTips []string `json:"category_tips"`
	BodyFatTips  []string `json:"body_fat_tips"`
	AgeTips      []string `json:"age_tips"`
	GenderTips   []string `json:"gender_tips"`
}

type categoryTips struct {
	Title string   `yaml:"title"`
	Tips  []string `yaml:"tips"`
}

type ageTips struct {
	Over65 []string `yaml:"over_65"`
	Over50 []string `yaml:"over_50"`
}

type tipCatalog struct {
	Categories map[string]categoryTips    `yaml:"categories"`
	BodyFat    map[BodyFatCategory]string `yaml:"body_fat"`
	Age        ageTips                    `yaml:"age"`
	Gender     map[Gender][]string        `yaml:"gender"`
}

//go:embed tips.yaml
var tipsYAML []byte

var catalog = mustLoadCatalog(tipsYAML)

func loadCatalog(data []byte) (*tipCatalog, error) {
	var c tipCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing tip catalog: %w", err)
	}
	for _, name := range bmiCategoryNames {
		if len(c.Categories[name].Tips) == 0 {
			return nil, fmt.Errorf("tip catalog: no tips for category %q", name)
		}
	}
	for _, fc := range fatCategories {
		if c.BodyFat[fc] == "" {
			return nil, fmt.Errorf("tip catalog: no tip for body fat category %q", fc)
		}
	}
	for _, g := range []Gender{Male, Female} {
		if len(c.Gender[g]) == 0 {
			return nil, fmt.Errorf("tip catalog: no tips for gender %q", g)
		}
	}
	return &c, nil
}

func mustLoadCatalog(data []byte) *tipCatalog {
	c, err := loadCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Recommend selects the tips for a calculation. bodyFat may be nil, in which
// case no body composition tip is added. The 65+ and 50+ age sets are
// exclusive: someone aged 70 gets only the 65+ set. The result shares no
// memory with the catalog.
func Recommend(cat BMICategory, bodyFat *BodyFatCategory, age int, g Gender) Recommendations {
	ct := catalog.Categories[cat.String()]
	r := Recommendations{
		Title:        ct.Title,
		Urgency:      UrgencyFor(cat),
		CategoryTips: clone(ct.Tips),
		BodyFatTips:  []string{},
		AgeTips:      []string{},
		GenderTips:   clone(catalog.Gender[g]),
	}

	if bodyFat != nil {
		if tip, ok := catalog.BodyFat[*bodyFat]; ok {
			r.BodyFatTips = []string{tip}
		}
	}

	if age >= 65 {
		r.AgeTips = clone(catalog.Age.Over65)
	} else if age >= 50 {
		r.AgeTips = clone(catalog.Age.Over50)
	}

	r.Tips = make([]string, 0, len(r.CategoryTips)+len(r.BodyFatTips)+len(r.AgeTips)+len(r.GenderTips))
	r.Tips = append(r.Tips, r.CategoryTips...)
	r.Tips = append(r.Tips, r.BodyFatTips...)
	r.Tips = append(r.Tips, r.AgeTips...)
	r.Tips = append(r.Tips, r.GenderTips...)
	return r
}

func clone(s []string) []string {
	return append([]string{}, s...)
}
