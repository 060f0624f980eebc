package horoscope

var phrasesEn = phrasebook{
	prefixes: map[Period]string{
		Daily:    "today",
		Tomorrow: "tomorrow",
		Weekly:   "this week",
		Monthly:  "this month",
		Yearly:   "this year",
	},
	overviews: [adviceCount]string{
		"{Time} is a vibrant stretch for {sign}. Your creativity and intuition are at their peak, which will help you untangle a few thorny problems.",
		"{sign} may face some challenges {time}, but they will help you grow. Stay calm and patient and you will get through this period.",
		"{Time} is a good moment for {sign} to reflect and plan. Spend some time on your long-term goals and set concrete steps toward them.",
		"Social luck is strong for {sign} {time}. It is a good time to connect with friends and family, and you may meet someone important to your future.",
		"Finances look good for {sign} {time}. Unexpected income or an investment opportunity may appear, but decide carefully and avoid acting on impulse.",
		"{sign} should keep an eye on health {time}. Make sure you get enough rest and watch your diet and exercise to stay well in body and mind.",
		"{Time} is a good time for {sign} to show your talents. Don't be afraid of the spotlight; your effort and ability will be recognised.",
		"{sign} may feel some emotional ups and downs {time}. Try meditation or other relaxation techniques to keep your inner calm.",
		"{Time} is a period of learning and growth for {sign}. Keep an open mind and you may gain new insights and knowledge.",
		"The intuition of {sign} is especially strong {time}. Trust your first impression; it may guide you to the right decision.",
	},
	moods: [labelCount]string{
		"Calm", "Excited", "Content", "Anxious", "Optimistic",
		"Thoughtful", "Energetic", "Sensitive", "Balanced", "Passionate",
		"Composed", "Curious", "Relaxed", "Focused", "Cheerful",
	},
	colors: [labelCount]string{
		"Red", "Blue", "Green", "Yellow", "Purple",
		"Orange", "Pink", "White", "Black", "Gold",
		"Silver", "Brown", "Cyan", "Beige", "Gray",
	},
	work: [adviceCount]string{
		"{Time} is a good time for {sign} to show leadership at work. Don't shy away from more responsibility; your effort will pay off.",
		"{sign} may run into some challenges at work {time}. Stay calm and focused, and ask colleagues for support and advice.",
		"{Time} is a good time for {sign} to revisit career goals. Think about your long-term plans and take concrete steps toward them.",
		"Teamwork goes well for {sign} {time}. Solve problems together with colleagues; a joint effort will bring better results.",
		"The creativity of {sign} is especially strong {time}. Use it on the problems at work and a breakthrough idea may follow.",
		"{sign} should watch the balance between work and life {time}. Don't let work pressure affect your health and personal life.",
		"{Time} is a good time for {sign} to learn new skills. Join a training or a workshop to sharpen your professional knowledge.",
		"{sign} may receive feedback on your work {time}. Keep an open mind and treat criticism as a chance to grow.",
		"{Time} is a good time for {sign} to build a professional network. Attend industry events or talk with peers to widen your circle.",
		"{sign} should focus on finishing open tasks {time}. Clear your to-do list to make room for new projects.",
	},
	love: [adviceCount]string{
		"{Time} is a good time for {sign} to express affection. Tell your partner how you feel; honest communication will deepen your bond.",
		"{sign} may meet some challenges in love {time}. Stay patient and understanding, and try to see things from your partner's side.",
		"{Time} is a good time for {sign} to reflect on emotional needs. Consider what you truly want and talk openly with your partner.",
		"Romance is favoured for {sign} {time}. Enjoy some time together with your partner, or if you are single you may meet someone interesting.",
		"{sign} should notice the small details in love {time}. A small thoughtful gesture may have a positive effect on your relationship.",
		"{sign} may feel some emotional swings {time}. Try to understand where these feelings come from and avoid projecting them onto your partner.",
		"{Time} is a good time for {sign} to seek balance in love. Make sure you both give and receive so the relationship stays healthy.",
		"{sign} should attend to your own needs {time}. Self-love is the foundation of a healthy relationship.",
		"{Time} is a good time for {sign} to deepen emotional ties. Share your dreams and fears with your partner to build deeper understanding.",
		"Single {sign} may meet someone attractive {time}. Stay open, but stay true to yourself.",
	},
	health: [adviceCount]string{
		"{sign} should listen closely to your body {time}. If you feel tired or unwell, give yourself time to rest.",
		"The energy of {sign} runs high {time}. It is a good moment to exercise or start a new fitness plan.",
		"{Time} is a good time for {sign} to focus on healthy eating. Add more fruit and vegetables and cut back on processed food.",
		"{sign} should look after your mental health {time}. Try meditation or deep breathing to ease stress and anxiety.",
		"{sign} may feel somewhat tired {time}. Make sure you get enough sleep and take a short nap when needed.",
		"{sign} should avoid overwork {time}. Plan your time and energy sensibly to avoid burnout.",
		"{Time} is a good time for {sign} to try a new healthy habit. Consider a yoga class or a new healthy recipe.",
		"{sign} should mind posture and ergonomics {time}, especially if you work at a computer for long hours.",
		"{Time} is a good time for {sign} to drop a bad habit. Consider cutting back on caffeine or sugar, or quitting smoking.",
		"{sign} should pay attention to hydration {time}. Drink enough water to keep your body in balance.",
	},
	relationships: [adviceCount]string{
		"{Time} is a good time for {sign} to strengthen friendships. Reach out to a friend you have not heard from in a while, or plan a small get-together.",
		"{sign} may reunite with an old friend {time}, which could bring unexpected opportunities or inspiration.",
		"{sign} will be especially popular in social settings {time}; your charm will draw like-minded people closer.",
		"{sign} should learn to set healthy boundaries in friendships {time}. Don't sacrifice your own needs to help friends.",
		"{Time} is a good time for {sign} to clear up misunderstandings between friends. Honest communication will help repair strained ties.",
		"{sign} may face some social challenges {time}. Stay true to yourself rather than meeting others' expectations.",
		"{Time} is a good time for {sign} to widen your social circle. Join a new activity or interest group and you will meet new friends.",
		"{sign} should value quality over quantity in relationships {time}. Spend time with the people who truly care about you.",
		"The intuition of {sign} reads other people's intentions especially well {time}. Trust your feelings about who deserves your trust.",
		"{sign} shines in teamwork {time}; your coordination and tolerance will help the group reach its goals.",
	},
}
