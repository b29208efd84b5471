package category

// Label 表示本地回复策略使用的话题分类。
type Label string

const (
	Anxiety    Label = "anxiety"
	Stress     Label = "stress"
	Motivation Label = "motivation"
	Lonely     Label = "lonely"
	Default    Label = "default"
)

// defaultRules 按优先级排列，先命中者胜出。
var defaultRules = []Rule{
	{
		Category: Anxiety,
		Keywords: []string{"anxious", "anxiety", "worried"},
		Responses: []string{
			"I understand you're feeling anxious. That's completely normal. Try the 4-7-8 breathing technique: breathe in for 4 counts, hold for 7, exhale for 8. Would you like me to guide you through some more coping strategies?",
			"Anxiety can feel overwhelming, but you're taking a positive step by reaching out. Let's focus on what you can control right now. What's one small thing that usually makes you feel better?",
		},
		Suggestions: []string{"Tell me about breathing exercises", "How can I manage panic attacks?", "What are grounding techniques?"},
	},
	{
		Category: Stress,
		Keywords: []string{"stress", "overwhelmed", "pressure"},
		Responses: []string{
			"Work stress is very common. Remember, it's important to set boundaries and take breaks. Have you tried any stress-reduction techniques like meditation or short walks?",
			"I hear that work is causing you stress. Let's break this down - what specific aspect is bothering you most? Sometimes talking through it can help clarify solutions.",
		},
		Suggestions: []string{"Tips for work-life balance", "How to prioritize tasks", "Stress-relief activities"},
	},
	{
		Category: Motivation,
		Keywords: []string{"motivation", "unmotivated", "give up"},
		Responses: []string{
			"Everyone needs motivation sometimes! Remember that small steps forward are still progress. What's one thing you've accomplished recently that you're proud of?",
			"Motivation can come and go, and that's okay. Let's focus on one small, achievable goal for today. What would make you feel accomplished?",
		},
		Suggestions: []string{"Help me set small goals", "How to build good habits", "Ways to celebrate progress"},
	},
	{
		Category: Lonely,
		Keywords: []string{"lonely", "alone", "isolated"},
		Responses: []string{
			"Feeling lonely is difficult, but reaching out here shows your strength. Connection is so important for our wellbeing. Are there any activities or hobbies that usually help you feel more connected?",
			"Loneliness is a human experience we all face sometimes. You're not alone in feeling this way. Have you considered joining any groups or activities related to your interests?",
		},
		Suggestions: []string{"How to meet new people", "Building meaningful connections", "Self-care when alone"},
	},
}

var defaultFallback = Rule{
	Category: Default,
	Responses: []string{
		"Thank you for sharing that with me. Your feelings are valid. Can you tell me more about what's on your mind?",
		"I'm here to listen and support you. Would you like to explore this feeling further or would you prefer some practical coping strategies?",
		"It sounds like you're going through something important. Remember, seeking support is a sign of strength, not weakness.",
	},
	Suggestions: []string{"I need coping strategies", "Tell me about mindfulness", "How to improve my mood"},
}

var starterSuggestions = []string{
	"I'm feeling anxious",
	"I'm stressed about work",
	"I need motivation",
	"I'm feeling lonely",
}

// StarterSuggestions 返回欢迎语附带的快捷回复，每次调用得到新的副本。
func StarterSuggestions() []string {
	return append([]string(nil), starterSuggestions...)
}

// QuickPrompt 对应前端的快捷入口卡片。
type QuickPrompt struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// QuickPrompts returns the quick-access prompts shown beside the chat window.
func QuickPrompts() []QuickPrompt {
	return []QuickPrompt{
		{Title: "Anxiety Support", Description: "Breathing exercises and coping strategies", Message: "I'm feeling anxious and need help"},
		{Title: "Stress Management", Description: "Tools for managing daily stress", Message: "I'm stressed and overwhelmed"},
		{Title: "Motivation Boost", Description: "Goal setting and positive reinforcement", Message: "I need motivation and encouragement"},
	}
}
