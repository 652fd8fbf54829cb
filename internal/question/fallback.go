package question

import "interview-prep/internal/domain"

// fallbackPools holds the hard-coded question sets served when the provider
// is unavailable or its output fails validation. Keyed by canonical category.
var fallbackPools = map[string][]fallbackQuestion{
	"general": {
		{"Tell me about yourself.", false},
		{"Why do you want to work in this field?", false},
		{"Describe a project you are proud of and your role in it.", false},
		{"Where do you see yourself in five years?", false},
		{"What is your biggest professional weakness and how do you manage it?", false},
		{"How do you prioritize when everything feels urgent?", false},
		{"What do you do when you disagree with a decision made above you?", false},
		{"Describe a time you had to learn something quickly.", false},
		{"What questions do you have for us?", false},
	},
	"technical": {
		{"Reverse a singly linked list. Walk through your approach before coding.", true},
		{"Explain the difference between a process and a thread.", false},
		{"Given an array of integers, find two numbers that add up to a target sum.", true},
		{"What happens when you type a URL into a browser and press enter?", false},
		{"Implement a function that checks whether a string is a valid palindrome.", true},
		{"How would you detect a cycle in a linked list?", true},
		{"Explain how a hash table works and when collisions become a problem.", false},
		{"Design a rate limiter for an HTTP API. What trade-offs do you face?", false},
		{"Write a function that merges two sorted arrays into one sorted array.", true},
	},
	"behavioral": {
		{"Tell me about a time you had a conflict with a teammate. How did you resolve it?", false},
		{"Describe a situation where you failed. What did you learn?", false},
		{"Give an example of a time you took ownership beyond your role.", false},
		{"Tell me about a time you received difficult feedback.", false},
		{"Describe a moment you had to persuade others to adopt your idea.", false},
		{"Tell me about a deadline you nearly missed and what you did.", false},
		{"Describe a time you simplified a complex problem for others.", false},
		{"When did you last change your mind about something important at work?", false},
		{"Tell me about a time you helped a struggling teammate.", false},
	},
	"Google": {
		{"Given a matrix of characters, count the number of connected islands of identical letters.", true},
		{"How would you design Google Drive's file synchronization?", false},
		{"Find the longest substring without repeating characters.", true},
		{"Explain how you would scale a web crawler to billions of pages.", false},
		{"Implement an LRU cache with O(1) get and put.", true},
		{"Tell me about a time you disagreed with your manager using data.", false},
		{"Given a stream of integers, return the median after each element.", true},
		{"How would you measure the success of a search ranking change?", false},
		{"Design an autocomplete system for a search box.", false},
	},
	"Amazon": {
		{"Tell me about a time you disagreed and committed anyway.", false},
		{"Design the inventory service for a same-day delivery warehouse.", false},
		{"Given product ratings over time, compute a rolling average efficiently.", true},
		{"Describe a decision you made with incomplete information.", false},
		{"Implement a function to find the k most frequent words in a document.", true},
		{"Tell me about a time you dove deep to find the root cause of a defect.", false},
		{"How would you design a URL shortener that survives a region outage?", false},
		{"Merge overlapping intervals from a list of bookings.", true},
		{"Give an example of insisting on the highest standards under time pressure.", false},
	},
	"Microsoft": {
		{"Validate that a binary tree is a binary search tree.", true},
		{"How would you design the backend for a collaborative document editor?", false},
		{"Explain the trade-offs between optimistic and pessimistic locking.", false},
		{"Serialize and deserialize a binary tree.", true},
		{"Tell me about a product you think is poorly designed and how you'd fix it.", false},
		{"Implement string compression (aabcccccaaa -> a2b1c5a3).", true},
		{"How do you approach testing a feature with many configuration combinations?", false},
		{"Find the first non-repeating character in a stream.", true},
		{"Describe a time you brought clarity to an ambiguous project.", false},
	},
}

type fallbackQuestion struct {
	text         string
	requiresCode bool
}

// fallbackRounds assembles the static set for a category into the requested
// number of rounds, cycling the pool when more questions are needed than it
// holds.
func fallbackRounds(category string, numRounds int) []domain.Round {
	pool, ok := fallbackPools[category]
	if !ok {
		pool = fallbackPools["general"]
	}

	rounds := make([]domain.Round, 0, numRounds)
	id := 1
	for r := 0; r < numRounds; r++ {
		round := make(domain.Round, 0, domain.QuestionsPerRound)
		for q := 0; q < domain.QuestionsPerRound; q++ {
			src := pool[(r*domain.QuestionsPerRound+q)%len(pool)]
			round = append(round, domain.Question{
				ID:           id,
				Type:         category,
				Question:     src.text,
				RequiresCode: src.requiresCode,
			})
			id++
		}
		rounds = append(rounds, round)
	}
	return rounds
}
