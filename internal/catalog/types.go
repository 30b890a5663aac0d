// types.go
package catalog

// RawCatalog is the patch database as stored in YAML.
type RawCatalog struct {
	Version string     `yaml:"version"`
	Patches []RawPatch `yaml:"patches"`
	Notes   string     `yaml:"notes,omitempty"`
}

// RawPatch is one released or announced patch.
type RawPatch struct {
	Version           string `yaml:"version" json:"version"`
	Type              string `yaml:"type" json:"type"` // "small" | "large"
	FeaturedCharacter string `yaml:"featured_character" json:"featured_character"`
}

// RawRun is a player's run file. Scalars are pointers so layered files can
// tell "unset" from zero.
type RawRun struct {
	Mode         *string             `yaml:"mode,omitempty"`
	Banner       *string             `yaml:"banner,omitempty"`
	Start        *string             `yaml:"start,omitempty"` // first patch of the timeline
	Resources    Resources           `yaml:"resources"`
	Pass         *Cycle              `yaml:"pass,omitempty"`
	Subscription *Cycle              `yaml:"subscription,omitempty"`
	Plan         map[string]PlanItem `yaml:"plan,omitempty"` // keyed by patch version
}

type Resources struct {
	Jewels        *int `yaml:"jewels,omitempty"`
	Tickets       *int `yaml:"tickets,omitempty"`
	Coins         *int `yaml:"coins,omitempty"`
	CharacterPity *int `yaml:"character_pity,omitempty"`
	WeaponPity    *int `yaml:"weapon_pity,omitempty"`
}

// Cycle is a recurring purchase (battle pass, monthly subscription).
type Cycle struct {
	Active   bool `yaml:"active"`
	DaysLeft int  `yaml:"days_left"`
}

// PlanItem is what the player wants from one patch.
type PlanItem struct {
	PullChar   bool `yaml:"pull_char"`
	Awareness  int  `yaml:"awareness"`
	PullWeapon bool `yaml:"pull_weapon"`
	Refinement int  `yaml:"refinement"`
}
