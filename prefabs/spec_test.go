package prefabs

import (
	"image/color"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadGameSpec(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if spec.SpeedMultiplier != 1 {
		t.Fatalf("speed multiplier = %v", spec.SpeedMultiplier)
	}
	if spec.Difficulty != "normal" || spec.TotalRounds != 5 {
		t.Fatalf("difficulty=%q rounds=%d", spec.Difficulty, spec.TotalRounds)
	}
	if spec.RestartDelay != 3*time.Second {
		t.Fatalf("restart delay = %v", spec.RestartDelay)
	}
	if spec.Theme.Human == nil {
		t.Fatalf("theme colours missing")
	}
}

func TestLoadAISpec(t *testing.T) {
	spec, err := LoadAISpec()
	if err != nil {
		t.Fatalf("LoadAISpec: %v", err)
	}
	cases := map[string]float64{"easy": 0.05, "normal": 0.02, "hard": 0.01}
	for name, want := range cases {
		p, ok := spec.Profiles[name]
		if !ok {
			t.Fatalf("profile %s missing", name)
		}
		if p.TurnProbability != want {
			t.Fatalf("%s turn probability = %v, want %v", name, p.TurnProbability, want)
		}
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"hunter", "hunter.tengo", "scripts/hunter.tengo", "prefabs/scripts/hunter"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("LoadScript(%q) returned empty script", name)
		}
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.Color
		wantErr bool
	}{
		{"rgb", `"#ff8000"`, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{"rgba", `"00ff0080"`, color.NRGBA{G: 255, A: 128}, false},
		{"short", `"#fff"`, nil, true},
		{"not_hex", `"#gggggg"`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("got %v, want %v", got.Color, c.want)
			}
		})
	}

	var missing *YAMLColor
	if missing.Or(color.White) != color.White {
		t.Fatalf("nil colour should use fallback")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/game.yaml", ChangeSpec, true},
		{"prefabs/ai.YML", ChangeSpec, true},
		{"prefabs/scripts/hunter.tengo", ChangeScript, true},
		{"prefabs/notes.txt", 0, false},
	}
	for _, c := range cases {
		kind, ok := classify(c.path)
		if ok != c.ok || (ok && kind != c.kind) {
			t.Fatalf("classify(%q) = %v,%v want %v,%v", c.path, kind, ok, c.kind, c.ok)
		}
	}
}
