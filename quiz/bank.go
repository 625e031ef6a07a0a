// quiz/bank.go
package quiz

// Phrase is one fill-in-the-blank prompt. Text contains a single "__"
// marker; Correct must be a member of the category's connective pool.
type Phrase struct {
	Text     string
	Category string
	Correct  string
}

// Bank is the static content a session draws from: connective phrases
// grouped by the linguistic relation they express, plus the prompt list in
// presentation order.
type Bank struct {
	Connectives map[string][]string
	Phrases     []Phrase
}

// DefaultBank returns the built-in Portuguese content.
func DefaultBank() *Bank {
	return &Bank{
		Connectives: map[string][]string{
			"adicao":      {"além disso", "bem como", "não só... como também", "também", "ademais"},
			"alternancia": {"ou", "quer... quer", "ora... ora", "já... já", "seja... seja"},
			"adversidade": {"mas", "porém", "contudo", "todavia", "entretanto"},
			"sequencia":   {"depois", "em seguida", "então", "por fim", "posteriormente"},
			"causa":       {"porque", "pois", "portanto", "logo", "por isso"},
		},
		Phrases: []Phrase{
			{Text: "Estudei muito, __, tirei uma ótima nota.", Category: "causa", Correct: "logo"},
			{Text: "Posso ir de ônibus __ de metrô, depende do horário.", Category: "alternancia", Correct: "ou"},
			{Text: "Ele treinou pouco, __ não conseguiu completar a prova.", Category: "causa", Correct: "portanto"},
			{Text: "Gostamos do filme; __, a trilha sonora era ótima.", Category: "adicao", Correct: "além disso"},
			{Text: "Tentei avisar, __ você não atendeu ao telefone.", Category: "adversidade", Correct: "mas"},
			{Text: "Primeiro lave as mãos, __ comece a preparar os alimentos.", Category: "sequencia", Correct: "depois"},
			{Text: "Ela é inteligente, __ é muito preguiçosa.", Category: "adversidade", Correct: "porém"},
			{Text: "Vou ao cinema __ ao teatro, nunca aos dois.", Category: "alternancia", Correct: "ou"},
			{Text: "Choveu muito, __ as ruas ficaram alagadas.", Category: "causa", Correct: "por isso"},
			{Text: "Terminei o trabalho, __ vou descansar.", Category: "sequencia", Correct: "então"},
		},
	}
}
