package textnorm

// defaultStopwords is the Spanish stopword set dropped during normalization:
// articles, prepositions, and other connective words that carry no signal
// when comparing subject or career names.
var defaultStopwords = []string{
	"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o", "de",
	"del", "a", "en", "por", "para", "con", "sin", "sobre", "entre",
	"que", "se", "su", "sus", "como", "pero", "mas", "si", "no",
	"al", "este", "esta", "estos", "estas", "aquel", "aquella",
	"aquellos", "aquellas",
}

// abbreviations maps common academic abbreviations (already lowercased and
// accent-stripped) to their expanded form, so "Prog. I" and "Programación I"
// normalize to overlapping term sets.
var abbreviations = map[string]string{
	"ing.":  "ingenieria",
	"mat.":  "matematica",
	"prog.": "programacion",
	"sist.": "sistemas",
	"comp.": "computacion",
	"lab.":  "laboratorio",
	"calc.": "calculo",
	"est.":  "estadistica",
	"adm.":  "administracion",
	"econ.": "economia",
	"prac.": "practica",
	"tec.":  "tecnologia",
	"alg.":  "algoritmos",
}
