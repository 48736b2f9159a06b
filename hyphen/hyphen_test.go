package hyphen

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/textprep/lexicon"
	"github.com/tsawler/textprep/stage"
	"pgregory.net/rapid"
)

func TestRejoin(t *testing.T) {
	withGap := DefaultOptions()
	withGap.MaxLineGap = 1

	preserveBen := DefaultOptions()
	preserveBen.PreserveTokens = lexicon.NewSet("ben")

	compounds := DefaultOptions()
	compounds.Compounds = lexicon.NewSet("socio-economico")

	fullDict := DefaultOptions()
	fullDict.Dictionary = lexicon.NewSet("porta", "lettere", "portalettere")

	halvesDict := DefaultOptions()
	halvesDict.Dictionary = lexicon.NewSet("porta", "lettere")

	unrelatedDict := DefaultOptions()
	unrelatedDict.Dictionary = lexicon.NewSet("gatto")

	tests := []struct {
		name string
		text string
		opts Options
		want string
	}{
		{"basic", "il libro è molto interes-\nsante.", DefaultOptions(), "il libro è molto interessante."},
		{"compound candidate", "ben-\nessere", DefaultOptions(), "benessere"},
		{"preserved fragment", "ben-\nessere", preserveBen, "ben-\nessere"},
		{"blank line over gap", "esem-\n\npio", DefaultOptions(), "esem-\n\npio"},
		{"blank line within gap", "esem-\n\npio", withGap, "esempio"},
		{"trailing space and indent", "inte-  \r\n   resse", DefaultOptions(), "interesse"},
		{"hyphen before punctuation", "a-, b", DefaultOptions(), "a-, b"},
		{"detached hyphen", "parola -\naltra", DefaultOptions(), "parola -\naltra"},
		{"digits", "anni 1990-\n2000", DefaultOptions(), "anni 1990-\n2000"},
		{"chain", "anglo-italo-\nfrancese", DefaultOptions(), "anglo-italo-\nfrancese"},
		{"known compound", "socio-\neconomico", compounds, "socio-\neconomico"},
		{"known compound ignoring case", "Socio-\neconomico", compounds, "Socio-\neconomico"},
		{"capitalized continuation", "Emilia-\nRomagna", DefaultOptions(), "Emilia-\nRomagna"},
		{"all caps", "INTERES-\nSANTE", DefaultOptions(), "INTERESSANTE"},
		{"dictionary knows merge", "porta-\nlettere", fullDict, "portalettere"},
		{"dictionary knows halves only", "porta-\nlettere", halvesDict, "porta-\nlettere"},
		{"dictionary knows neither", "inte-\nresse", unrelatedDict, "interesse"},
		{"soft hyphen at line end", "inte\u00ad\nressante", DefaultOptions(), "interessante"},
		{"soft hyphen inside word", "inte\u00adressante", DefaultOptions(), "interessante"},
		{"not sign", "inte¬\nressante", DefaultOptions(), "interessante"},
		{"unicode hyphen", "inte\u2010\nressante", DefaultOptions(), "interessante"},
		{"end of text", "fine-", DefaultOptions(), "fine-"},
		{"nothing follows", "fine-\n", DefaultOptions(), "fine-\n"},
		{"continuation starts with digit", "pagina-\n12", DefaultOptions(), "pagina-\n12"},
		{"elided article", "dell'inte-\nresse", DefaultOptions(), "dell'interesse"},
		{"several joins", "a bc-\nde fg-\nhi", DefaultOptions(), "a bcde fghi"},
		{"independent decisions", "uno-\nDue tre-\nquattro", DefaultOptions(), "uno-\nDue trequattro"},
		{"disabled", "interes-\nsante inte\u00adresse", Options{}, "interes-\nsante inte\u00adresse"},
		{"empty", "", DefaultOptions(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rejoin(tt.text, tt.opts)
			if err != nil {
				t.Fatalf("Rejoin() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Rejoin(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRejoin_InvalidGap(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxLineGap = -1

	_, err := Rejoin("a-\nb", opts)
	var invalid *stage.InvalidOptionError
	if !errors.As(err, &invalid) {
		t.Fatalf("Rejoin() error = %v, want *stage.InvalidOptionError", err)
	}
	if invalid.Option != "max_line_gap" {
		t.Errorf("Option = %q, want %q", invalid.Option, "max_line_gap")
	}
}

func TestAnalyze(t *testing.T) {
	opts := DefaultOptions()
	opts.PreserveTokens = lexicon.NewSet("ben")

	text := "interes-\nsante, ben-\nessere, Emilia-\nRomagna, anglo-italo-\nfrancese, fine-\n"
	decisions, err := Analyze(text, opts)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := []struct {
		fragment string
		reason   Reason
	}{
		{"interes", Joined},
		{"ben", Preserved},
		{"Emilia", Capitalized},
		{"italo", CompoundChain},
		{"fine", NoContinuation},
	}
	if len(decisions) != len(want) {
		t.Fatalf("Analyze() returned %d decisions, want %d: %+v", len(decisions), len(want), decisions)
	}
	for i, w := range want {
		d := decisions[i]
		if d.Fragment != w.fragment || d.Reason != w.reason {
			t.Errorf("decision %d = (%q, %s), want (%q, %s)", i, d.Fragment, d.Reason, w.fragment, w.reason)
		}
		if d.Joined != (w.reason == Joined) {
			t.Errorf("decision %d Joined = %v", i, d.Joined)
		}
		if !isHyphen([]rune(text[d.Offset:])[0]) {
			t.Errorf("decision %d Offset %d does not point at a hyphen", i, d.Offset)
		}
	}
	if decisions[0].Continuation != "sante" {
		t.Errorf("Continuation = %q, want %q", decisions[0].Continuation, "sante")
	}
}

func TestAnalyze_Gap(t *testing.T) {
	decisions, err := Analyze("esem-\n \n\npio", DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(decisions) != 1 {
		t.Fatalf("Analyze() returned %d decisions, want 1", len(decisions))
	}
	if decisions[0].Gap != 2 || decisions[0].Reason != LineGap {
		t.Errorf("decision = %+v, want gap 2 rejected", decisions[0])
	}
}

func TestRejoin_WithoutHyphensUnchanged(t *testing.T) {
	alphabet := []rune{'a', 'è', 'Z', '1', ' ', '\n', '\t', '.', '\''}

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "text")
		got, err := Rejoin(text, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if got != text {
			t.Fatalf("Rejoin(%q) = %q, want unchanged", text, got)
		}
	})
}

func TestRejoin_OnlyRemoves(t *testing.T) {
	alphabet := []rune{'a', 'b', 'C', '-', '\u00ad', '\n', ' '}

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "text")
		got, err := Rejoin(text, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		strip := func(s string) string {
			return strings.Map(func(r rune) rune {
				switch r {
				case '-', '\u00ad', '\n', ' ':
					return -1
				}
				return r
			}, s)
		}
		if strip(got) != strip(text) {
			t.Fatalf("letters changed: %q -> %q", text, got)
		}
	})
}
