// Package config provides YAML-based content and level tables for the games,
// difficulty presets, and conversion into round engine types.
package config

// Game kinds.
const (
	KindQuiz   = "quiz"
	KindMemory = "memory"
)

// Interaction styles for quiz games.
const (
	InteractionChoose = "choose"
	InteractionDrag   = "drag"
)

// How the round target is shown.
const (
	TargetGlyph    = "glyph"
	TargetName     = "name"
	TargetText     = "text"
	TargetSequence = "sequence"
)

// How options are labelled.
const (
	OptionsName  = "name"
	OptionsGlyph = "glyph"
	OptionsBoth  = "both"
)

// GameConfig is one game's complete content table.
type GameConfig struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Icon        string        `yaml:"icon"`
	Kind        string        `yaml:"kind"`
	Interaction string        `yaml:"interaction"`
	Prompt      string        `yaml:"prompt"`
	Display     DisplayConfig `yaml:"display"`
	Policy      PolicyConfig  `yaml:"policy"`
	Items       []ItemConfig  `yaml:"items"`
	Levels      []LevelConfig `yaml:"levels"`

	// Source records where the table was loaded from.
	Source string `yaml:"-"`
}

// DisplayConfig controls how a quiz presents its target and options.
type DisplayConfig struct {
	Target  string `yaml:"target"`
	Options string `yaml:"options"`
}

// PolicyConfig maps onto round.Config.
type PolicyConfig struct {
	Selection      string `yaml:"selection"`
	ResetOnMistake bool   `yaml:"reset_on_mistake"`
	Distractors    int    `yaml:"distractors"`
}

// ItemConfig defines one item in the game catalog.
type ItemConfig struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Glyph    string   `yaml:"glyph"`
	Text     string   `yaml:"text"`
	Hint     string   `yaml:"hint"`
	Category string   `yaml:"category"`
	Order    int      `yaml:"order"`
	Decoys   []string `yaml:"decoys"`
}

// LevelConfig defines one level. Items and Extras reference catalog ids;
// All puts the whole catalog in play. Items may repeat an id when the level
// is a sequence (a word with a doubled letter).
type LevelConfig struct {
	Number        int      `yaml:"number"`
	Description   string   `yaml:"description"`
	RequiredScore int      `yaml:"required_score"`
	TimeLimit     int      `yaml:"time_limit"`
	All           bool     `yaml:"all"`
	Items         []string `yaml:"items"`
	Extras        []string `yaml:"extras"`
}

// Item looks up a catalog item by id.
func (c GameConfig) Item(id string) (ItemConfig, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemConfig{}, false
}
