package conjugation

import (
	"fmt"
	"strings"

	berrors "github.com/javijec/new-biblia/internal/errors"
)

// template lists the endings of one regular conjugation, grouped by tense, in
// the order forms are generated.
type template struct {
	infinitive           string
	present              []string
	imperfect            []string
	preterite            []string
	future               []string
	conditional          []string
	presentSubjunctive   []string
	imperfectSubjunctive []string
	gerund               string
	pastParticiple       []string
}

func (t template) endings() [][]string {
	return [][]string{
		{t.infinitive},
		t.present,
		t.imperfect,
		t.preterite,
		t.future,
		t.conditional,
		t.presentSubjunctive,
		t.imperfectSubjunctive,
		{t.gerund},
		t.pastParticiple,
	}
}

var templates = map[string]template{
	"ar": {
		infinitive:           "ar",
		present:              []string{"o", "as", "a", "amos", "áis", "an"},
		imperfect:            []string{"aba", "abas", "ábamos", "abais", "aban"},
		preterite:            []string{"é", "aste", "ó", "amos", "asteis", "aron"},
		future:               []string{"aré", "arás", "ará", "aremos", "aréis", "arán"},
		conditional:          []string{"aría", "arías", "aríamos", "aríais", "arían"},
		presentSubjunctive:   []string{"e", "es", "emos", "éis", "en"},
		imperfectSubjunctive: []string{"ara", "aras", "áramos", "arais", "aran", "ase", "ases", "ásemos", "aseis", "asen"},
		gerund:               "ando",
		pastParticiple:       []string{"ado", "ada", "ados", "adas"},
	},
	"er": {
		infinitive:           "er",
		present:              []string{"o", "es", "e", "emos", "éis", "en"},
		imperfect:            []string{"ía", "ías", "íamos", "íais", "ían"},
		preterite:            []string{"í", "iste", "ió", "imos", "isteis", "ieron"},
		future:               []string{"eré", "erás", "erá", "eremos", "eréis", "erán"},
		conditional:          []string{"ería", "erías", "eríamos", "eríais", "erían"},
		presentSubjunctive:   []string{"a", "as", "amos", "áis", "an"},
		imperfectSubjunctive: []string{"iera", "ieras", "iéramos", "ierais", "ieran", "iese", "ieses", "iésemos", "ieseis", "iesen"},
		gerund:               "iendo",
		pastParticiple:       []string{"ido", "ida", "idos", "idas"},
	},
	"ir": {
		infinitive:           "ir",
		present:              []string{"o", "es", "e", "imos", "ís", "en"},
		imperfect:            []string{"ía", "ías", "íamos", "íais", "ían"},
		preterite:            []string{"í", "iste", "ió", "imos", "isteis", "ieron"},
		future:               []string{"iré", "irás", "irá", "iremos", "iréis", "irán"},
		conditional:          []string{"iría", "irías", "iríamos", "iríais", "irían"},
		presentSubjunctive:   []string{"a", "as", "amos", "áis", "an"},
		imperfectSubjunctive: []string{"iera", "ieras", "iéramos", "ierais", "ieran", "iese", "ieses", "iésemos", "ieseis", "iesen"},
		gerund:               "iendo",
		pastParticiple:       []string{"ido", "ida", "idos", "idas"},
	},
}

// Conjugate generates the regular -ar, -er or -ir forms of infinitive. It does
// not know about stem or spelling changes, so irregular verbs must be listed
// explicitly.
func Conjugate(infinitive string) (Verb, error) {
	inf := strings.ToLower(strings.TrimSpace(infinitive))
	if len(inf) < 3 {
		return Verb{}, berrors.NewValidation("infinitive", fmt.Sprintf("%q is not an infinitive", infinitive))
	}

	ending := inf[len(inf)-2:]
	tmpl, ok := templates[ending]
	if !ok {
		return Verb{}, berrors.NewValidation("infinitive", fmt.Sprintf("%q does not end in -ar, -er or -ir", infinitive))
	}
	stem := inf[:len(inf)-2]

	seen := make(map[string]bool)
	var forms []string
	for _, group := range tmpl.endings() {
		for _, e := range group {
			form := stem + e
			if form == inf || seen[form] {
				continue
			}
			seen[form] = true
			forms = append(forms, form)
		}
	}

	return Verb{Infinitive: inf, Forms: forms}, nil
}

// regular are the common regular verbs of the corpus whose forms are generated.
var regular = []string{
	"hablar", "amar", "llamar", "mirar", "entrar", "guardar", "caminar",
	"salvar", "adorar", "alabar", "perdonar", "sanar", "lavar", "cantar",
	"levantar", "preguntar", "escuchar", "enseñar", "tomar", "pasar",
	"esperar", "gritar", "matar", "reinar", "ayunar", "habitar", "mandar",
	"comer", "beber", "temer", "vender", "aprender", "responder", "correr",
	"vivir", "partir", "subir", "recibir", "cumplir", "sufrir",
	"permitir", "resistir",
}
