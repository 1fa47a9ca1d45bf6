package app

// LeaderboardSize is the number of rows displayed on the room leaderboard.
// Keep this centralized so tests or local runs can adjust it in one place.
const LeaderboardSize = 10
