package conjugation

// irregular lists the inflected forms of the common irregular verbs. Accented
// spellings are kept; New folds them.
var irregular = []Verb{
	{
		Infinitive: "ser",
		Forms: []string{
			"soy", "eres", "es", "somos", "sois", "son",
			"era", "eras", "éramos", "erais", "eran", "fui",
			"fuiste", "fue", "fuimos", "fuisteis", "fueron", "seré",
			"serás", "será", "seremos", "seréis", "serán", "sería",
			"serías", "seríamos", "seríais", "serían", "sea", "seas",
			"seamos", "seáis", "sean", "fuera", "fueras", "fuéramos",
			"fuerais", "fueran", "fuese", "fueses", "fuésemos", "fueseis",
			"fuesen", "siendo", "sido",
		},
	},
	{
		Infinitive: "estar",
		Forms: []string{
			"estoy", "estás", "está", "estamos", "estáis", "están",
			"estaba", "estabas", "estábamos", "estabais", "estaban", "estuve",
			"estuviste", "estuvo", "estuvimos", "estuvisteis", "estuvieron", "estaré",
			"estarás", "estará", "estaremos", "estaréis", "estarán", "estaría",
			"estarías", "estaríamos", "estaríais", "estarían", "esté", "estés",
			"estemos", "estéis", "estén", "estuviera", "estuvieras", "estuviéramos",
			"estuvierais", "estuvieran", "estuviese", "estuvieses", "estuviésemos", "estuvieseis",
			"estuviesen", "estando", "estado", "estada", "estados", "estadas",
		},
	},
	{
		Infinitive: "haber",
		Forms: []string{
			"he", "has", "ha", "hemos", "habéis", "han",
			"había", "habías", "habíamos", "habíais", "habían", "hube",
			"hubiste", "hubo", "hubimos", "hubisteis", "hubieron", "habré",
			"habrás", "habrá", "habremos", "habréis", "habrán", "habría",
			"habrías", "habríamos", "habríais", "habrían", "haya", "hayas",
			"hayamos", "hayáis", "hayan", "hubiera", "hubieras", "hubiéramos",
			"hubierais", "hubieran", "hubiese", "hubieses", "hubiésemos", "hubieseis",
			"hubiesen", "habiendo", "habido", "habida", "habidos", "habidas",
		},
	},
	{
		Infinitive: "hacer",
		Forms: []string{
			"hago", "haces", "hace", "hacemos", "hacéis", "hacen",
			"hacía", "hacías", "hacíamos", "hacíais", "hacían", "hice",
			"hiciste", "hizo", "hicimos", "hicisteis", "hicieron", "haré",
			"harás", "hará", "haremos", "haréis", "harán", "haría",
			"harías", "haríamos", "haríais", "harían", "haga", "hagas",
			"hagamos", "hagáis", "hagan", "hiciera", "hicieras", "hiciéramos",
			"hicierais", "hicieran", "hiciese", "hicieses", "hiciésemos", "hicieseis",
			"hiciesen", "haciendo", "hecho", "hecha", "hechos", "hechas",
		},
	},
	{
		Infinitive: "decir",
		Forms: []string{
			"digo", "dices", "dice", "decimos", "decís", "dicen",
			"decía", "decías", "decíamos", "decíais", "decían", "dije",
			"dijiste", "dijo", "dijimos", "dijisteis", "dijeron", "diré",
			"dirás", "dirá", "diremos", "diréis", "dirán", "diría",
			"dirías", "diríamos", "diríais", "dirían", "diga", "digas",
			"digamos", "digáis", "digan", "dijera", "dijeras", "dijéramos",
			"dijerais", "dijeran", "dijese", "dijeses", "dijésemos", "dijeseis",
			"dijesen", "diciendo", "dicho", "dicha", "dichos", "dichas",
		},
	},
	{
		Infinitive: "poder",
		Forms: []string{
			"puedo", "puedes", "puede", "podemos", "podéis", "pueden",
			"podía", "podías", "podíamos", "podíais", "podían", "pude",
			"pudiste", "pudo", "pudimos", "pudisteis", "pudieron", "podré",
			"podrás", "podrá", "podremos", "podréis", "podrán", "podría",
			"podrías", "podríamos", "podríais", "podrían", "pueda", "puedas",
			"podamos", "podáis", "puedan", "pudiera", "pudieras", "pudiéramos",
			"pudierais", "pudieran", "pudiese", "pudieses", "pudiésemos", "pudieseis",
			"pudiesen", "pudiendo", "podido", "podida", "podidos", "podidas",
		},
	},
	{
		Infinitive: "querer",
		Forms: []string{
			"quiero", "quieres", "quiere", "queremos", "queréis", "quieren",
			"quería", "querías", "queríamos", "queríais", "querían", "quise",
			"quisiste", "quiso", "quisimos", "quisisteis", "quisieron", "querré",
			"querrás", "querrá", "querremos", "querréis", "querrán", "querría",
			"querrías", "querríamos", "querríais", "querrían", "quiera", "quieras",
			"queramos", "queráis", "quieran", "quisiera", "quisieras", "quisiéramos",
			"quisierais", "quisieran", "quisiese", "quisieses", "quisiésemos", "quisieseis",
			"quisiesen", "queriendo", "querido", "querida", "queridos", "queridas",
		},
	},
	{
		Infinitive: "venir",
		Forms: []string{
			"vengo", "vienes", "viene", "venimos", "venís", "vienen",
			"venía", "venías", "veníamos", "veníais", "venían", "vine",
			"viniste", "vino", "vinimos", "vinisteis", "vinieron", "vendré",
			"vendrás", "vendrá", "vendremos", "vendréis", "vendrán", "vendría",
			"vendrías", "vendríamos", "vendríais", "vendrían", "venga", "vengas",
			"vengamos", "vengáis", "vengan", "viniera", "vinieras", "viniéramos",
			"vinierais", "vinieran", "viniese", "vinieses", "viniésemos", "vinieseis",
			"viniesen", "viniendo", "venido", "venida", "venidos", "venidas",
		},
	},
	{
		Infinitive: "ir",
		Forms: []string{
			"voy", "vas", "va", "vamos", "vais", "van",
			"iba", "ibas", "íbamos", "ibais", "iban", "fui",
			"fuiste", "fue", "fuimos", "fuisteis", "fueron", "iré",
			"irás", "irá", "iremos", "iréis", "irán", "iría",
			"irías", "iríamos", "iríais", "irían", "vaya", "vayas",
			"vayamos", "vayáis", "vayan", "fuera", "fueras", "fuéramos",
			"fuerais", "fueran", "fuese", "fueses", "fuésemos", "fueseis",
			"fuesen", "yendo", "ido", "ida", "idos", "idas",
		},
	},
	{
		Infinitive: "dar",
		Forms: []string{
			"doy", "das", "da", "damos", "dais", "dan",
			"daba", "dabas", "dábamos", "dabais", "daban", "di",
			"diste", "dio", "dimos", "disteis", "dieron", "daré",
			"darás", "dará", "daremos", "daréis", "darán", "daría",
			"darías", "daríamos", "daríais", "darían", "dé", "des",
			"demos", "deis", "den", "diera", "dieras", "diéramos",
			"dierais", "dieran", "diese", "dieses", "diésemos", "dieseis",
			"diesen", "dando", "dado", "dada", "dados", "dadas",
		},
	},
	{
		Infinitive: "deber",
		Forms: []string{
			"debo", "debes", "debe", "debemos", "debéis", "deben",
			"debía", "debías", "debíamos", "debíais", "debían", "debí",
			"debiste", "debió", "debimos", "debisteis", "debieron", "deberé",
			"deberás", "deberá", "deberemos", "deberéis", "deberán", "debería",
			"deberías", "deberíamos", "deberíais", "deberían", "deba", "debas",
			"debamos", "debáis", "deban", "debiera", "debieras", "debiéramos",
			"debierais", "debieran", "debiese", "debieses", "debiésemos", "debieseis",
			"debiesen", "debiendo", "debido", "debida", "debidos", "debidas",
		},
	},
	{
		Infinitive: "tener",
		Forms: []string{
			"tengo", "tienes", "tiene", "tenemos", "tenéis", "tienen",
			"tenía", "tenías", "teníamos", "teníais", "tenían", "tuve",
			"tuviste", "tuvo", "tuvimos", "tuvisteis", "tuvieron", "tendré",
			"tendrás", "tendrá", "tendremos", "tendréis", "tendrán", "tendría",
			"tendrías", "tendríamos", "tendríais", "tendrían", "tenga", "tengas",
			"tengamos", "tengáis", "tengan", "tuviera", "tuvieras", "tuviéramos",
			"tuvierais", "tuvieran", "tuviese", "tuvieses", "tuviésemos", "tuvieseis",
			"tuviesen", "teniendo", "tenido", "tenida", "tenidos", "tenidas",
		},
	},
}
