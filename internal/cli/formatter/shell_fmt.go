package formatter

import "strings"

// ExampleQuestions are shown on shell startup.
var ExampleQuestions = []string{
	"Quantos gols o Flamengo fez nos últimos 10 jogos?",
	"O Flamengo ganha hoje contra o River Plate?",
	"Quais apostas posso fazer no jogo Palmeiras x São Paulo?",
	"Mostre o histórico de confrontos entre Corinthians e Santos",
	"Como está a forma recente do Real Madrid?",
	"Quais os próximos jogos do Barcelona?",
}

// FormatShellWelcome renders the banner shown on shell startup.
func FormatShellWelcome() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  ⚽ matchday") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString(StyleDim.Render("  Football analysis and betting insights. Ask in plain language.") + "\n\n")
	b.WriteString("  " + StyleHeader.Render("EXAMPLES") + "\n")
	for _, q := range ExampleQuestions {
		b.WriteString("  " + StyleDim.Render("•") + " " + StyleGreen.Render(q) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  ↑/↓ for history. Type 'sair', 'exit' or 'quit' to leave.") + "\n")

	return b.String()
}

// FormatGoodbye is printed when the shell exits.
func FormatGoodbye() string {
	return Dim("Bye. Good luck with your bets! 🎲") + "\n"
}
