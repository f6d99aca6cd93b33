package theme

import "testing"

func TestLoadAllThemes(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", name, err)
			}
			if th.Name != name {
				t.Errorf("Name = %q, want %q", th.Name, name)
			}
			if th.Bg == "" || th.Fg == "" || th.Accent == "" {
				t.Errorf("theme %q missing base colors: %+v", name, th)
			}
			if len(th.Tags) == 0 {
				t.Errorf("theme %q has no tag colors", name)
			}
		})
	}
}

func TestLoadFallback(t *testing.T) {
	th, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if th.Name != "frappe" {
		t.Errorf("fallback theme = %q, want frappe", th.Name)
	}

	th, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if th.Name != "frappe" {
		t.Errorf("default theme = %q, want frappe", th.Name)
	}
}

func TestTagColor(t *testing.T) {
	th, err := Load("frappe")
	if err != nil {
		t.Fatal(err)
	}

	if got := th.TagColor("teal"); got != "#81c8be" {
		t.Errorf("TagColor(teal) = %q", got)
	}
	if got := th.TagColor("TEAL"); got != "#81c8be" {
		t.Errorf("TagColor is case sensitive: %q", got)
	}
	if got := th.TagColor("nope"); got != th.Block {
		t.Errorf("unknown tag = %q, want default block color %q", got, th.Block)
	}
	if got := th.TagColor(""); got != th.Block {
		t.Errorf("empty tag = %q, want default block color %q", got, th.Block)
	}
}

func TestBlockBgDarkVsLight(t *testing.T) {
	dark, _ := Load("frappe")
	light, _ := Load("latte")

	// Both must produce a valid hex distinct from the raw tag color.
	for _, th := range []*Theme{dark, light} {
		got := th.BlockBg("#e78284")
		if len(got) != 7 || got[0] != '#' {
			t.Fatalf("BlockBg = %q", got)
		}
		if got == "#e78284" {
			t.Errorf("BlockBg did not shade the tag color for %s", th.Name)
		}
		muted := th.BlockBgMuted("#e78284")
		if muted == got {
			t.Errorf("muted shade equals base shade for %s", th.Name)
		}
	}
}

func TestTextOn(t *testing.T) {
	th, _ := Load("frappe")
	if got := th.TextOn("#303446"); got != th.Fg {
		t.Errorf("dark bg should pick theme fg, got %q", got)
	}
	if got := th.TextOn("#f2f2f2"); got != th.Bg {
		t.Errorf("light bg should pick theme bg for contrast, got %q", got)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("Frappe") {
		t.Error("IsAvailable should be case insensitive")
	}
	if IsAvailable("solarized") {
		t.Error("unknown theme reported available")
	}
}
