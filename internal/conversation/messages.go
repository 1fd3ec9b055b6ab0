package conversation

// Greeting opens every fresh conversation and asks for a name.
const Greeting = "👋 Hi — I can help with L’Oréal product advice, routines, and recommendations. What’s your name? (Say \"skip\" if you’d rather not share.)"

// SkipAck is sent when the user declines to share a name.
const SkipAck = "No problem! Ask me about products, ingredients, or routine steps."

func nameAck(name string) string {
	return "Nice to meet you, " + name + "! Ask me about products, ingredients, or routine steps."
}
