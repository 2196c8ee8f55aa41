package props

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProperties(t *testing.T) {
	var p Properties
	p.Set("music", "town.ogg")
	p.Set("pvp", "false")
	p.Set("music", "night.ogg")

	want := Properties{{Name: "music", Value: "night.ogg"}, {Name: "pvp", Value: "false"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
	if got := p.Value("pvp"); got != "false" {
		t.Errorf("Value(pvp) = %q", got)
	}
	if _, ok := p.Get("weather"); ok {
		t.Errorf("Get(weather) found a property")
	}
	if !p.Delete("music") || p.Delete("music") {
		t.Errorf("Delete(music) should succeed exactly once")
	}
	if got := p.Value("music"); got != "" {
		t.Errorf("Value(music) after delete = %q", got)
	}
}
