package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/common"
	"github.com/Veraticus/allot/internal/model"
)

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/allot/allot.db"

// seedNamespace scopes the IDs of seeded categories.
var seedNamespace = uuid.MustParse("0b6f3c52-4a8e-5d1f-9c27-7e3a1d5b8f40")

// CategoryDefault seeds one category of a fresh budget.
type CategoryDefault struct {
	Name    string  `mapstructure:"name"`
	Percent float64 `mapstructure:"percent"`
}

// Defaults is the budget used when nothing has been stored yet.
type Defaults struct {
	Categories []CategoryDefault
	Income     float64
}

// BuiltinDefaults returns the stock budget: 50000 income split across
// Essentials, Savings and Wants at 50/20/30.
func BuiltinDefaults() Defaults {
	return Defaults{
		Income: 50000,
		Categories: []CategoryDefault{
			{Name: "Essentials", Percent: 50},
			{Name: "Savings", Percent: 20},
			{Name: "Wants", Percent: 30},
		},
	}
}

// LoadDefaults reads the defaults.* keys, falling back to BuiltinDefaults
// for anything that is not configured.
func LoadDefaults(v *viper.Viper) (Defaults, error) {
	defaults := BuiltinDefaults()

	if v.IsSet("defaults.income") {
		defaults.Income = v.GetFloat64("defaults.income")
	}

	if v.IsSet("defaults.categories") {
		var categories []CategoryDefault
		if err := v.UnmarshalKey("defaults.categories", &categories); err != nil {
			return Defaults{}, fmt.Errorf("%w: defaults.categories: %v", common.ErrInvalidConfig, err)
		}
		defaults.Categories = categories
	}

	if err := defaults.Validate(); err != nil {
		return Defaults{}, err
	}
	return defaults, nil
}

// Validate checks that the defaults describe a usable budget.
func (d Defaults) Validate() error {
	if math.IsNaN(d.Income) || math.IsInf(d.Income, 0) {
		return fmt.Errorf("%w: defaults.income must be a finite number", common.ErrInvalidConfig)
	}
	for i, c := range d.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: defaults.categories[%d] has no name", common.ErrInvalidConfig, i)
		}
		if math.IsNaN(c.Percent) || math.IsInf(c.Percent, 0) {
			return fmt.Errorf("%w: defaults.categories[%d] percent must be a finite number", common.ErrInvalidConfig, i)
		}
	}
	return nil
}

// State builds a fresh budget from the defaults. Categories get a zero
// balance and IDs derived from their position and name, so an unsaved
// budget shows the same IDs on every run. There are no transactions or
// goals.
func (d Defaults) State() model.State {
	state := model.State{
		Income:       d.Income,
		Categories:   []model.Category{},
		Transactions: []model.Transaction{},
		Goals:        []model.Goal{},
	}

	for i, c := range d.Categories {
		cat, next := budget.AddCategory(state, c.Name, SeedCategoryID(i, c.Name))
		percent := c.Percent
		_, next, _ = budget.UpdateCategory(next, cat.ID, budget.CategoryUpdate{Percent: &percent})
		state = next
	}
	return state
}

// SeedCategoryID returns the ID of the default category at position i.
func SeedCategoryID(i int, name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%d/%s", i, name))).String()
}

// DatabasePath returns the expanded database path.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}
