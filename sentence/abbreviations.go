package sentence

// Built-in abbreviations, lower-case with their final period.
var builtinAbbreviations = map[string][]string{
	"it": {
		"sig.", "sigg.", "dott.", "prof.", "ing.", "avv.",
		"arch.", "geom.", "rag.", "on.", "sen.", "dr.", "mons.", "don.", "fra.",
		"p.", "pag.", "pagg.", "pp.", "ecc.", "etc.", "es.", "cfr.", "vol.",
		"voll.", "cap.", "capp.", "art.", "artt.", "n.", "nn.", "num.", "tel.",
		"fig.", "figg.", "tab.", "ca.", "sec.", "secc.", "ss.", "cit.", "op.",
		"ed.", "trad.", "a.c.", "d.c.", "vs.", "lett.", "par.", "s.p.a.",
		"s.r.l.", "c.d.", "ib.", "ibid.", "id.", "v.", "gen.", "feb.", "mar.",
		"apr.", "giu.", "lug.", "ago.", "set.", "ott.", "nov.", "dic.",
	},
	"en": {
		"mr.", "mrs.", "ms.", "dr.", "prof.", "sr.", "jr.", "st.", "vs.",
		"etc.", "e.g.", "i.e.", "inc.", "ltd.", "co.", "corp.", "jan.", "feb.",
		"mar.", "apr.", "jun.", "jul.", "aug.", "sep.", "sept.", "oct.", "nov.",
		"dec.", "rd.", "ave.", "blvd.", "no.", "vol.", "pp.", "pg.", "p.",
		"fig.", "approx.", "dept.", "est.", "cf.", "al.", "ed.", "eds.",
		"gen.", "gov.", "lt.", "col.", "capt.", "rev.", "hon.", "u.s.",
	},
	"fr": {
		"m.", "mm.", "mme.", "mmes.", "mlle.", "mlles.", "dr.", "pr.", "me.",
		"st.", "ste.", "etc.", "cf.", "p.", "pp.", "vol.", "éd.", "chap.",
		"env.", "av.", "apr.", "n.", "réf.", "fig.", "t.", "ibid.",
		"janv.", "févr.", "avr.", "juill.", "sept.", "oct.", "nov.", "déc.",
	},
	"de": {
		"z.b.", "bzw.", "usw.", "u.a.", "d.h.", "vgl.", "dr.", "prof.", "hr.",
		"fr.", "nr.", "str.", "ca.", "evtl.", "ggf.", "inkl.", "s.", "abs.",
		"jh.", "jhd.", "bspw.", "etc.", "u.ä.", "o.ä.", "sog.", "bd.", "hrsg.",
		"jan.", "feb.", "febr.", "aug.", "sept.", "okt.", "nov.", "dez.",
	},
	"es": {
		"sr.", "sra.", "srta.", "sres.", "dr.", "dra.", "ud.", "uds.", "pág.",
		"págs.", "etc.", "p.ej.", "ej.", "núm.", "cap.", "vol.", "aprox.",
		"av.", "avda.", "dña.", "d.", "lic.", "ing.", "prof.", "cía.", "s.a.",
		"ene.", "feb.", "abr.", "ago.", "sept.", "oct.", "nov.", "dic.",
	},
	"la": {
		"cf.", "sc.", "scil.", "vid.", "ibid.", "id.", "op.", "cit.", "ca.",
		"fl.", "c.", "a.c.n.", "a.u.c.", "d.", "m.", "p.", "q.", "ser.",
		"sp.", "ti.", "cn.", "sex.", "ap.", "l.", "kal.", "non.", "eid.",
	},
}

// Languages whose ordinal numbers are written with a period ("3. Oktober").
var ordinalLanguages = map[string]bool{
	"de": true,
	"la": true,
}
