package ledger

import "github.com/sheikh-saqib/fitcoin-ledger/internal/models"

const (
	pointsPerLevel = 1000
	// defaultActivityPoints is awarded for activity types missing from the table.
	defaultActivityPoints = 10
	redeemActivity        = "marketplace_purchase"
)

var activityPoints = map[string]int{
	"workout":        10,
	"cardio":         15,
	"strength":       12,
	"yoga":           8,
	"sports":         20,
	"challenge":      25,
	"team_activity":  30,
	"daily_goal":     50,
	"weekly_goal":    100,
	"streak_bonus":   5,
	"first_activity": 100,
	"social_share":   5,
	"referral":       200,
}

var activityDescriptions = map[string]string{
	"workout":   "Completed a workout session",
	"cardio":    "Finished cardio training",
	"strength":  "Completed strength training",
	"yoga":      "Finished yoga session",
	"sports":    "Played sports with team",
	"challenge": "Completed fitness challenge",
}

// BasePoints returns the points one unmultiplied activity of the given type is worth.
func BasePoints(activity string) int {
	if p, ok := activityPoints[activity]; ok {
		return p
	}
	return defaultActivityPoints
}

// ActivityTypes lists the activity types with their base points.
func ActivityTypes() map[string]int {
	out := make(map[string]int, len(activityPoints))
	for k, v := range activityPoints {
		out[k] = v
	}
	return out
}

func levelFor(points int) int {
	return points/pointsPerLevel + 1
}

type achievementRule struct {
	achievement models.Achievement
	met         func(models.LedgerState) bool
}

// Evaluated in order. All conditions see the state from before any bonus of the same pass.
var achievementRules = []achievementRule{
	{
		achievement: models.Achievement{ID: "first_workout", Title: "First Steps", Description: "Completed your first activity!", Points: 100, Icon: "🎯"},
		met:         func(s models.LedgerState) bool { return s.TotalActivities == 1 },
	},
	{
		achievement: models.Achievement{ID: "week_streak", Title: "Week Warrior", Description: "7-day activity streak!", Points: 200, Icon: "🔥"},
		met:         func(s models.LedgerState) bool { return s.Streak >= 7 },
	},
	{
		achievement: models.Achievement{ID: "month_streak", Title: "Monthly Master", Description: "30-day activity streak!", Points: 500, Icon: "🏆"},
		met:         func(s models.LedgerState) bool { return s.Streak >= 30 },
	},
	{
		achievement: models.Achievement{ID: "thousand_points", Title: "Point Collector", Description: "Earned 1000+ FitCoins!", Points: 0, Icon: "💰"},
		met:         func(s models.LedgerState) bool { return s.Points >= 1000 },
	},
	{
		achievement: models.Achievement{ID: "five_thousand_points", Title: "FitCoin Millionaire", Description: "Earned 5000+ FitCoins!", Points: 0, Icon: "💎"},
		met:         func(s models.LedgerState) bool { return s.Points >= 5000 },
	},
}

// maxAchievementBonus is the most a single award can add in bonuses.
var maxAchievementBonus = func() int {
	total := 0
	for _, rule := range achievementRules {
		total += rule.achievement.Points
	}
	return total
}()

func hasAchievement(s models.LedgerState, id string) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// newAchievements returns the achievements s qualifies for but has not unlocked yet.
func newAchievements(s models.LedgerState) []models.Achievement {
	var out []models.Achievement
	for _, rule := range achievementRules {
		if rule.met(s) && !hasAchievement(s, rule.achievement.ID) {
			out = append(out, rule.achievement)
		}
	}
	return out
}
