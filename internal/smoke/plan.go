package smoke

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LessonPlaceholder in a check's path or body is replaced by the lesson id
// under test.
const LessonPlaceholder = "{{lesson}}"

type Check struct {
	Name           string   `yaml:"name"`
	Method         string   `yaml:"method"`
	Path           string   `yaml:"path"`
	Body           string   `yaml:"body,omitempty"`
	Auth           bool     `yaml:"auth,omitempty"`
	RequiresLesson bool     `yaml:"requiresLesson,omitempty"`
	ExpectStatus   []int    `yaml:"expectStatus"`
	ExpectBody     string   `yaml:"expectBody,omitempty"`
	ExpectNonEmpty []string `yaml:"expectNonEmpty,omitempty"`
}

type Plan struct {
	Checks []Check `yaml:"checks"`
}

func (p Plan) Validate() error {
	if len(p.Checks) == 0 {
		return fmt.Errorf("plan has no checks")
	}
	seen := map[string]bool{}
	for i, c := range p.Checks {
		name := strings.TrimSpace(c.Name)
		switch {
		case name == "":
			return fmt.Errorf("check %d: missing name", i)
		case seen[name]:
			return fmt.Errorf("check %q: duplicate name", name)
		case !strings.HasPrefix(c.Path, "/"):
			return fmt.Errorf("check %q: path must start with /", name)
		case len(c.ExpectStatus) == 0:
			return fmt.Errorf("check %q: expectStatus is required", name)
		}
		seen[name] = true
	}
	return nil
}

func ParsePlan(raw []byte) (Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	for i := range p.Checks {
		if p.Checks[i].Method == "" {
			p.Checks[i].Method = "GET"
		}
		p.Checks[i].Method = strings.ToUpper(p.Checks[i].Method)
	}
	return p, p.Validate()
}

func LoadPlan(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, err
	}
	return ParsePlan(raw)
}

const missingLessonID = "__smoke_missing_lesson__"

// DefaultPlan exercises health, client config, lesson lookup and check-in.
func DefaultPlan() Plan {
	return Plan{Checks: []Check{
		{
			Name:         "healthcheck responds ok",
			Method:       "GET",
			Path:         "/healthcheck",
			ExpectStatus: []int{200},
			ExpectBody:   "ok",
		},
		{
			Name:           "client config exposes api and socket urls",
			Method:         "GET",
			Path:           "/api/config",
			ExpectStatus:   []int{200},
			ExpectNonEmpty: []string{"apiUrl", "socketUrl"},
		},
		{
			Name:         "unknown lesson is 404",
			Method:       "GET",
			Path:         "/api/lessons/" + missingLessonID,
			ExpectStatus: []int{404},
		},
		{
			Name:         "check-in of unknown lesson is 404",
			Method:       "POST",
			Path:         "/api/lessons/" + missingLessonID + "/check-in",
			Auth:         true,
			ExpectStatus: []int{404},
		},
		{
			Name:           "check-in stamps the lesson",
			Method:         "POST",
			Path:           "/api/lessons/" + LessonPlaceholder + "/check-in",
			Auth:           true,
			RequiresLesson: true,
			ExpectStatus:   []int{200},
			ExpectNonEmpty: []string{"checkedInAt", "lesson.checkInAt"},
		},
		{
			Name:           "repeated check-in with onlyIfUnset keeps timestamp",
			Method:         "POST",
			Path:           "/api/lessons/" + LessonPlaceholder + "/check-in",
			Body:           `{"onlyIfUnset":true}`,
			Auth:           true,
			RequiresLesson: true,
			ExpectStatus:   []int{200},
			ExpectNonEmpty: []string{"alreadyCheckedIn"},
		},
		{
			Name:           "lesson reads back with check-in",
			Method:         "GET",
			Path:           "/api/lessons/" + LessonPlaceholder,
			RequiresLesson: true,
			ExpectStatus:   []int{200},
			ExpectNonEmpty: []string{"lesson.checkInAt"},
		},
	}}
}
