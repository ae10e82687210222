package services

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/GradUWate/GradUWate-backend/internal/coursegraph"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
)

// ChooseList is an elective list from which a number of courses must be
// picked. Expansion includes every candidate so the aggregated graph can
// show all possible dependencies.
type ChooseList struct {
	Choose  int      `yaml:"choose" json:"choose"`
	Courses []string `yaml:"courses" json:"courses"`
}

// Plan is one academic plan definition (major, minor or specialization).
type Plan struct {
	Name                     string                `yaml:"name" json:"name"`
	Aliases                  []string              `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	RequiredCourses          []string              `yaml:"required_courses" json:"required_courses"`
	CommunicationRequirement *ChooseList           `yaml:"communication_requirement,omitempty" json:"communication_requirement,omitempty"`
	ComplementaryLists       map[string]ChooseList `yaml:"complementary_lists,omitempty" json:"complementary_lists,omitempty"`
	NaturalScience           *ChooseList           `yaml:"natural_science,omitempty" json:"natural_science,omitempty"`
	TechnicalElectives       map[string]ChooseList `yaml:"technical_electives,omitempty" json:"technical_electives,omitempty"`
	SustainabilityOptions    []string              `yaml:"sustainability_options,omitempty" json:"sustainability_options,omitempty"`
}

// AllCodes flattens the plan to the normalized set of every course code it
// references, required and elective alike.
func (p *Plan) AllCodes() []string {
	seen := make(map[string]struct{})
	add := func(codes []string) {
		for _, c := range codes {
			norm := coursegraph.NormalizeCode(c)
			if norm != "" {
				seen[norm] = struct{}{}
			}
		}
	}
	add(p.RequiredCourses)
	if p.CommunicationRequirement != nil {
		add(p.CommunicationRequirement.Courses)
	}
	for _, list := range p.ComplementaryLists {
		add(list.Courses)
	}
	if p.NaturalScience != nil {
		add(p.NaturalScience.Courses)
	}
	for _, list := range p.TechnicalElectives {
		add(list.Courses)
	}
	add(p.SustainabilityOptions)

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

type PlanSummary struct {
	Name    string `json:"name"`
	Courses int    `json:"courses"`
}

// PlanService owns the plan catalog. Built-in definitions can be replaced
// wholesale by a YAML file named in PLANS_FILE.
type PlanService interface {
	List() []PlanSummary
	Get(name string) (*Plan, bool)
	// Expand flattens the named plans into one sorted set of normalized
	// course codes. Unknown names are reported, not fatal.
	Expand(names []string) (codes []string, unknown []string)
}

type planService struct {
	log     *logger.Logger
	plans   map[string]*Plan // keyed by lowercased name and aliases
	ordered []*Plan
}

func NewPlanService(baseLog *logger.Logger, plansFile string) (PlanService, error) {
	log := baseLog.With("service", "PlanService")

	plans := defaultPlans()
	if plansFile != "" {
		loaded, err := loadPlansFile(plansFile)
		if err != nil {
			return nil, fmt.Errorf("load plans file %s: %w", plansFile, err)
		}
		log.Info("Loaded plan definitions from file", "path", plansFile, "plans", len(loaded))
		plans = loaded
	}

	s := &planService{log: log, plans: make(map[string]*Plan)}
	for _, p := range plans {
		s.ordered = append(s.ordered, p)
		s.plans[normalizePlanName(p.Name)] = p
		for _, alias := range p.Aliases {
			s.plans[normalizePlanName(alias)] = p
		}
	}
	return s, nil
}

func loadPlansFile(path string) ([]*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Plans []*Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Plans) == 0 {
		return nil, fmt.Errorf("no plans defined")
	}
	return doc.Plans, nil
}

func (s *planService) List() []PlanSummary {
	out := make([]PlanSummary, 0, len(s.ordered))
	for _, p := range s.ordered {
		out = append(out, PlanSummary{Name: p.Name, Courses: len(p.AllCodes())})
	}
	return out
}

func (s *planService) Get(name string) (*Plan, bool) {
	p, ok := s.plans[normalizePlanName(name)]
	return p, ok
}

func (s *planService) Expand(names []string) ([]string, []string) {
	seen := make(map[string]struct{})
	var unknown []string
	for _, name := range names {
		plan, ok := s.Get(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		for _, code := range plan.AllCodes() {
			seen[code] = struct{}{}
		}
	}
	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes, unknown
}
