package calculators

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-tally/internal/domain"
	"github.com/ahrav/go-tally/internal/ports"
)

var (
	_ ports.BonusCalculator = (*ProfitTiers)(nil)
	_ domain.BonusFunc      = BonusByProfit
)

// Names of the rules evaluated by ProfitTiers, in evaluation order.
const (
	RuleTop      = "top"
	RuleLast     = "last"
	RuleRunnerUp = "runner_up"
	RuleDefault  = "default"
)

// ProfitTiers pays each seller a share of its profit chosen by the seller's
// position in the profit ranking.
//
// Rule evaluation: rules form an ordered list and the first matching rule
// wins. The default list is
//
//	top       rank == 0                       profit * 0.15
//	last      rank == total-1                 0
//	runner_up 1 <= rank <= 2                  profit * 0.10
//	default   any rank                        profit * 0.05
//
// so a single seller is "top" rather than "last", and with two or three
// sellers the final position is "last" rather than "runner_up".
//
// Concurrency: the rule list is built once at construction and never
// mutated, so Bonus is safe for concurrent use.
type ProfitTiers struct {
	// config contains the validated configuration parameters.
	config ProfitTiersConfig
	// rules are evaluated in order; the last rule always matches.
	rules []BonusRule
}

// BonusRule is one entry of the ordered rule list.
type BonusRule struct {
	// Name identifies the rule for diagnostics and tests.
	Name string
	// Rate is the share of profit paid when the rule matches.
	Rate float64
	// Matches reports whether the rule applies to rank out of total.
	Matches func(rank, total int) bool
}

// ProfitTiersConfig controls the bonus rates of each tier. Rates are
// fractions of profit, not percentages.
type ProfitTiersConfig struct {
	// TopRate applies to the most profitable seller.
	TopRate float64 `yaml:"top_rate" json:"top_rate" validate:"min=0,max=1"`

	// RunnerUpRate applies to the RunnerUpPositions sellers after the top one.
	RunnerUpRate float64 `yaml:"runner_up_rate" json:"runner_up_rate" validate:"min=0,max=1"`

	// RunnerUpPositions is how many ranks after the top receive RunnerUpRate.
	// Zero disables the tier.
	RunnerUpPositions int `yaml:"runner_up_positions" json:"runner_up_positions" validate:"min=0,max=1000"`

	// LastRate applies to the least profitable seller.
	LastRate float64 `yaml:"last_rate" json:"last_rate" validate:"min=0,max=1"`

	// DefaultRate applies to every other seller.
	DefaultRate float64 `yaml:"default_rate" json:"default_rate" validate:"min=0,max=1"`
}

// DefaultProfitTiersConfig returns the standard tiers: 15% for the top
// seller, 10% for the next two, nothing for the last and 5% for everyone
// else.
func DefaultProfitTiersConfig() ProfitTiersConfig {
	return ProfitTiersConfig{
		TopRate:           0.15,
		RunnerUpRate:      0.10,
		RunnerUpPositions: 2,
		LastRate:          0,
		DefaultRate:       0.05,
	}
}

// NewProfitTiers creates a ProfitTiers calculator with a validated
// configuration.
func NewProfitTiers(config ProfitTiersConfig) (*ProfitTiers, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &ProfitTiers{
		config: config,
		rules:  buildRules(config),
	}, nil
}

func buildRules(config ProfitTiersConfig) []BonusRule {
	runnerUps := config.RunnerUpPositions
	return []BonusRule{
		{
			Name:    RuleTop,
			Rate:    config.TopRate,
			Matches: func(rank, _ int) bool { return rank == 0 },
		},
		{
			Name:    RuleLast,
			Rate:    config.LastRate,
			Matches: func(rank, total int) bool { return rank == total-1 },
		},
		{
			Name:    RuleRunnerUp,
			Rate:    config.RunnerUpRate,
			Matches: func(rank, _ int) bool { return rank >= 1 && rank <= runnerUps },
		},
		{
			Name:    RuleDefault,
			Rate:    config.DefaultRate,
			Matches: func(int, int) bool { return true },
		},
	}
}

// Name returns the strategy name.
func (p *ProfitTiers) Name() string { return ProfitTiersName }

// Config returns a copy of the calculator's configuration.
func (p *ProfitTiers) Config() ProfitTiersConfig { return p.config }

// Rule returns the name of the rule that applies to rank out of total.
func (p *ProfitTiers) Rule(rank, total int) string {
	return p.match(rank, total).Name
}

func (p *ProfitTiers) match(rank, total int) BonusRule {
	for _, rule := range p.rules {
		if rule.Matches(rank, total) {
			return rule
		}
	}
	// The default rule matches everything.
	return p.rules[len(p.rules)-1]
}

// Bonus implements ports.BonusCalculator. Ranks are not range-checked;
// callers pass 0 <= rank < total.
func (p *ProfitTiers) Bonus(rank, total int, seller domain.SellerStats) float64 {
	rule := p.match(rank, total)
	if rule.Rate == 0 {
		return 0
	}
	return seller.Profit * rule.Rate
}

// Validate verifies the calculator configuration.
func (p *ProfitTiers) Validate() error {
	if err := validate.Struct(p.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters decodes YAML parameters into the calculator and
// rebuilds its rules. Unset fields keep their default values. The
// calculator is unchanged on error.
func (p *ProfitTiers) UnmarshalParameters(params yaml.Node) error {
	config := DefaultProfitTiersConfig()

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	p.config = config
	p.rules = buildRules(config)
	return nil
}

// NewProfitTiersFromConfig creates a ProfitTiers calculator from a
// configuration map. This is the boundary adapter for YAML/JSON
// configuration.
func NewProfitTiersFromConfig(params map[string]any) (ports.BonusCalculator, error) {
	data, err := yaml.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	// Start with defaults, then overlay user config.
	cfg := DefaultProfitTiersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewProfitTiers(cfg)
}

var defaultProfitTiers, _ = NewProfitTiers(DefaultProfitTiersConfig())

// BonusByProfit applies the default profit tiers. It satisfies
// domain.BonusFunc.
func BonusByProfit(rank, total int, seller domain.SellerStats) float64 {
	return defaultProfitTiers.Bonus(rank, total, seller)
}
