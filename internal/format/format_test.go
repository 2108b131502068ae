package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bestiary/internal/ir"
)

func TestSource_URLBecomesLink(t *testing.T) {
	got := Source("Homebrew:https://example.com/x")
	assert.Equal(t, `<a target="_blank" href="https://example.com/x">Homebrew</a>`, got)
}

func TestSource_PageIndex(t *testing.T) {
	assert.Equal(t, "PHB: 120", Source("PHB:120"))
	assert.Equal(t, "PHB: 120", Source("  PHB :  120 "))
}

func TestSource_NoIndex(t *testing.T) {
	assert.Equal(t, "Monster Manual", Source("Monster Manual"))
	assert.Equal(t, "Monster Manual", Source("Monster Manual:"))
}

func TestSource_NonHTTPSchemeIsPlain(t *testing.T) {
	assert.Equal(t, "Zine: ftp://example.com/z", Source("Zine:ftp://example.com/z"))
	assert.Equal(t, "Zine: https:", Source("Zine:https:"))
}

func TestSource_EscapesMarkup(t *testing.T) {
	got := Source(`<b>Brew</b>:https://example.com/?a=1&b="2"`)
	assert.Equal(t,
		`<a target="_blank" href="https://example.com/?a=1&amp;b=&#34;2&#34;">&lt;b&gt;Brew&lt;/b&gt;</a>`,
		got)
}

func TestSplitSource_FirstColonOnly(t *testing.T) {
	name, index := SplitSource("Homebrew:https://example.com:8080/x")
	assert.Equal(t, "Homebrew", name)
	assert.Equal(t, "https://example.com:8080/x", index)
}

func TestSources_JoinsInOrder(t *testing.T) {
	got := Sources("Monster Manual: 166, Volo's Guide:176 ,, Homebrew:http://example.com/k")
	assert.Equal(t,
		`Monster Manual: 166, Volo's Guide: 176, <a target="_blank" href="http://example.com/k">Homebrew</a>`,
		got)
	assert.Equal(t, "", Sources(""))
}

func TestRow_TrimsAndFormats(t *testing.T) {
	m := ir.Monster{
		Name:      "  Goblin ",
		CR:        "1/4 ",
		Size:      "Small",
		Type:      " humanoid",
		Tags:      "goblinoid",
		Section:   "Goblins",
		Alignment: "neutral evil ",
		Sources:   "Monster Manual:166",
		FID:       " mm-166 ",
		HP:        "7",
		AC:        "15",
		Init:      "+2",

		Environment: "Forest",
		Legendary:   "legendary",
	}

	row := Row(m)
	require.Len(t, row, len(ir.MonsterColumns))
	assert.Equal(t, []string{
		"Goblin", "1/4", "Small", "humanoid", "goblinoid", "Goblins",
		"neutral evil", "Monster Manual: 166", "mm-166", "7", "15", "+2",
	}, row)
}

func TestRows_PreservesOrder(t *testing.T) {
	rows := Rows([]ir.Monster{{Name: "Zombie"}, {Name: "Aboleth"}})
	require.Len(t, rows, 2)
	assert.Equal(t, "Zombie", rows[0][0])
	assert.Equal(t, "Aboleth", rows[1][0])

	assert.NotNil(t, Rows(nil))
}
