package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
	"gopkg.in/yaml.v3"
)

const (
	KindStaffing = "staffing"
	KindRoad     = "road"

	defaultInvalidateInterval = 100
	defaultErrorLogInterval   = 10
	defaultRoadRange          = 1
)

// WarrenConfig represents the top-level warren.yml configuration
type WarrenConfig struct {
	Version    string                    `yaml:"version"`
	Colony     string                    `yaml:"colony"`
	Cycle      *CycleConfig              `yaml:"cycle,omitempty"`
	Facilities map[string]FacilityConfig `yaml:"facilities,omitempty"` // Only used for simulated runs
	Operations map[string]Operation      `yaml:"operations"`
}

// CycleConfig tunes the cycle driver
type CycleConfig struct {
	InvalidateInterval int64 `yaml:"invalidate_interval,omitempty"` // Cycles between cache invalidation (default 100)
	ErrorLogInterval   int64 `yaml:"error_log_interval,omitempty"`  // Sampling interval for unexpected facility errors (default 10)
}

// FacilityConfig describes a simulated production facility
type FacilityConfig struct {
	Position  world.Position `yaml:"position"`
	MaxEnergy int            `yaml:"max_energy"`
	Level     int            `yaml:"level"`
}

// Operation groups missions bound to one anchor
type Operation struct {
	Anchor   world.Position `yaml:"anchor"`
	Facility string         `yaml:"facility,omitempty"`
	Backup   *BackupConfig  `yaml:"backup,omitempty"`
	Missions []Mission      `yaml:"missions"`
}

// BackupConfig allows a remote facility to stand in when the home facility is missing
type BackupConfig struct {
	Range    int `yaml:"range"`
	MinLevel int `yaml:"min_level,omitempty"`
}

// Mission is a single workforce controller
type Mission struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"` // "staffing" or "road"
	AllowRecruit *bool  `yaml:"allow_recruit,omitempty"`

	// Staffing
	Roles []Role `yaml:"roles,omitempty"`

	// Road
	From            *world.Position `yaml:"from,omitempty"` // Defaults to the facility
	To              *world.Position `yaml:"to,omitempty"`   // Defaults to the anchor
	Range           *int            `yaml:"range,omitempty"`
	IgnoreSiteLimit bool            `yaml:"ignore_site_limit,omitempty"`
}

// Role is one staffed role of a staffing mission
type Role struct {
	Name            string             `yaml:"name"`
	Count           int                `yaml:"count"`
	Body            []body.Segment     `yaml:"body,omitempty"`
	Ratio           *body.RatioSpec    `yaml:"ratio,omitempty"`
	Prespawn        *int               `yaml:"prespawn,omitempty"`
	MeasurePrespawn bool               `yaml:"measure_prespawn,omitempty"`
	Pair            bool               `yaml:"pair,omitempty"`
	Boosts          []string           `yaml:"boosts,omitempty"`
	AllowUnboosted  bool               `yaml:"allow_unboosted,omitempty"`
	DisableNotify   bool               `yaml:"disable_notify,omitempty"`
	SkipMoveToRoom  bool               `yaml:"skip_move_to_room,omitempty"`
	BlindRecruit    bool               `yaml:"blind_recruit,omitempty"`
	Reservation     *world.Reservation `yaml:"reservation,omitempty"`
}

// Validate performs strict validation on the configuration and applies defaults
func (c *WarrenConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if err := validateName("colony", c.Colony); err != nil {
		return err
	}

	if c.Cycle == nil {
		c.Cycle = &CycleConfig{}
	}
	if c.Cycle.InvalidateInterval == 0 {
		c.Cycle.InvalidateInterval = defaultInvalidateInterval
	}
	if c.Cycle.ErrorLogInterval == 0 {
		c.Cycle.ErrorLogInterval = defaultErrorLogInterval
	}
	if c.Cycle.InvalidateInterval < 0 {
		return fmt.Errorf("cycle.invalidate_interval must be > 0, got %d", c.Cycle.InvalidateInterval)
	}
	if c.Cycle.ErrorLogInterval < 0 {
		return fmt.Errorf("cycle.error_log_interval must be > 0, got %d", c.Cycle.ErrorLogInterval)
	}

	for id, f := range c.Facilities {
		if err := f.Validate(id); err != nil {
			return err
		}
	}

	if len(c.Operations) == 0 {
		return fmt.Errorf("no operations defined")
	}

	for _, name := range c.OperationNames() {
		op := c.Operations[name]
		if err := op.Validate(name); err != nil {
			return err
		}
		if op.Facility != "" && len(c.Facilities) > 0 {
			if _, ok := c.Facilities[op.Facility]; !ok {
				return fmt.Errorf("operation '%s': unknown facility '%s'", name, op.Facility)
			}
		}
		c.Operations[name] = op
	}

	return nil
}

// OperationNames returns operation names in sorted order
func (c *WarrenConfig) OperationNames() []string {
	names := make([]string, 0, len(c.Operations))
	for name := range c.Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a facility definition
func (f *FacilityConfig) Validate(id string) error {
	if id == "" {
		return fmt.Errorf("facility id is required")
	}
	if f.Position.Room == "" {
		return fmt.Errorf("facility '%s': position.room is required", id)
	}
	if f.MaxEnergy <= 0 {
		return fmt.Errorf("facility '%s': max_energy must be > 0", id)
	}
	if f.Level < 1 || f.Level > 8 {
		return fmt.Errorf("facility '%s': level must be between 1 and 8, got %d", id, f.Level)
	}
	return nil
}

// Validate performs validation on a single operation and applies mission defaults
func (o *Operation) Validate(name string) error {
	if err := validateName("operation", name); err != nil {
		return err
	}
	if strings.Contains(name, "_") {
		return fmt.Errorf("operation '%s': name must not contain '_'", name)
	}
	if o.Anchor.Room == "" {
		return fmt.Errorf("operation '%s': anchor.room is required", name)
	}
	if o.Facility == "" && o.Backup == nil {
		return fmt.Errorf("operation '%s': either facility or backup must be provided", name)
	}
	if o.Backup != nil && o.Backup.Range <= 0 {
		return fmt.Errorf("operation '%s': backup.range must be > 0", name)
	}
	if len(o.Missions) == 0 {
		return fmt.Errorf("operation '%s': no missions defined", name)
	}

	missionsSeen := make(map[string]bool)
	rolesSeen := make(map[string]string) // role → mission
	for i := range o.Missions {
		m := &o.Missions[i]
		if err := m.Validate(name); err != nil {
			return err
		}
		if missionsSeen[m.Name] {
			return fmt.Errorf("operation '%s': duplicate mission '%s'", name, m.Name)
		}
		missionsSeen[m.Name] = true

		// Unit names encode operation and role, so a role may only be staffed once per operation.
		for _, r := range m.Roles {
			if other, exists := rolesSeen[r.Name]; exists {
				return fmt.Errorf("operation '%s': role '%s' is staffed by both '%s' and '%s'", name, r.Name, other, m.Name)
			}
			rolesSeen[r.Name] = m.Name
		}
	}
	return nil
}

// Validate performs validation on a single mission
func (m *Mission) Validate(operation string) error {
	if err := validateName("mission", m.Name); err != nil {
		return fmt.Errorf("operation '%s': %w", operation, err)
	}

	switch m.Kind {
	case KindStaffing:
		if len(m.Roles) == 0 {
			return fmt.Errorf("mission '%s': staffing missions need at least one role", m.Name)
		}
		for i := range m.Roles {
			if err := m.Roles[i].Validate(m.Name); err != nil {
				return err
			}
		}
	case KindRoad:
		if len(m.Roles) > 0 {
			return fmt.Errorf("mission '%s': road missions do not take roles", m.Name)
		}
		if m.Range == nil {
			r := defaultRoadRange
			m.Range = &r
		}
		if *m.Range < 0 {
			return fmt.Errorf("mission '%s': range must be >= 0", m.Name)
		}
	default:
		return fmt.Errorf("mission '%s': invalid kind: %s (must be '%s' or '%s')", m.Name, m.Kind, KindStaffing, KindRoad)
	}
	return nil
}

// Validate performs validation on a single role
func (r *Role) Validate(mission string) error {
	if err := validateName("role", r.Name); err != nil {
		return fmt.Errorf("mission '%s': %w", mission, err)
	}
	if strings.Contains(r.Name, "_") {
		return fmt.Errorf("mission '%s': role '%s' must not contain '_'", mission, r.Name)
	}
	if r.Count < 0 {
		return fmt.Errorf("mission '%s': role '%s': count must be >= 0", mission, r.Name)
	}

	hasBody := len(r.Body) > 0
	hasRatio := r.Ratio != nil
	if hasBody == hasRatio {
		return fmt.Errorf("mission '%s': role '%s': exactly one of body or ratio must be provided", mission, r.Name)
	}
	if hasBody {
		total := 0
		for _, s := range r.Body {
			if _, ok := body.Cost[s.Part]; !ok {
				return fmt.Errorf("mission '%s': role '%s': unknown part '%s'", mission, r.Name, s.Part)
			}
			if s.Count <= 0 {
				return fmt.Errorf("mission '%s': role '%s': part count must be > 0", mission, r.Name)
			}
			total += s.Count
		}
		if total > body.MaxParts {
			return fmt.Errorf("mission '%s': role '%s': body has %d parts (max %d)", mission, r.Name, total, body.MaxParts)
		}
	}
	if hasRatio {
		if err := r.Ratio.Validate(); err != nil {
			return fmt.Errorf("mission '%s': role '%s': %w", mission, r.Name, err)
		}
	}
	if r.Prespawn != nil && *r.Prespawn < 0 {
		return fmt.Errorf("mission '%s': role '%s': prespawn must be >= 0", mission, r.Name)
	}
	if r.Prespawn != nil && r.MeasurePrespawn {
		return fmt.Errorf("mission '%s': role '%s': prespawn and measure_prespawn are mutually exclusive", mission, r.Name)
	}
	return nil
}

// Recruits reports whether the mission may request new units.
func (m *Mission) Recruits() bool {
	return m.AllowRecruit == nil || *m.AllowRecruit
}

// validateName rejects names that would break ledger keys.
func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if strings.ContainsAny(name, ": ") {
		return fmt.Errorf("%s name '%s' must not contain ':' or spaces", kind, name)
	}
	return nil
}

// Load reads and validates warren.yml from the specified path
func Load(path string) (*WarrenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config WarrenConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
