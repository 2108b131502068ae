package ir

// Size labels in ascending order.
var Sizes = []string{"Tiny", "Small", "Medium", "Large", "Huge", "Gargantuan"}

// Monster is one stored monster record.
//
// Sources holds the display form "name:page-or-url" joined by commas.
// SourceHashes holds the matching hash tokens joined by commas and is only
// used for filtering.
type Monster struct {
	Name         string `json:"name" yaml:"name"`
	CR           string `json:"cr" yaml:"cr"`
	Size         string `json:"size" yaml:"size"`
	Type         string `json:"type" yaml:"type"`
	Tags         string `json:"tags" yaml:"tags"`
	Section      string `json:"section" yaml:"section"`
	Alignment    string `json:"alignment" yaml:"alignment"`
	Environment  string `json:"environment" yaml:"environment"`
	Sources      string `json:"sources" yaml:"sources"`
	SourceHashes string `json:"sourcehashes" yaml:"-"`
	Legendary    string `json:"legendary" yaml:"legendary"`
	Named        string `json:"named" yaml:"named"`
	FID          string `json:"fid" yaml:"fid"`
	HP           string `json:"hp" yaml:"hp"`
	AC           string `json:"ac" yaml:"ac"`
	Init         string `json:"init" yaml:"init"`
}

// Source is one registered source book.
type Source struct {
	Name     string `json:"name" yaml:"name"`
	Hash     string `json:"hash" yaml:"-"`
	Official bool   `json:"official" yaml:"official"`
}

// MonsterColumns lists the columns returned by a filter request, in
// response order.
var MonsterColumns = []string{
	"name", "cr", "size", "type", "tags", "section",
	"alignment", "sources", "fid", "hp", "ac", "init",
}

// Values returns the response columns of m in MonsterColumns order.
func (m Monster) Values() []string {
	return []string{
		m.Name, m.CR, m.Size, m.Type, m.Tags, m.Section,
		m.Alignment, m.Sources, m.FID, m.HP, m.AC, m.Init,
	}
}
