package game

import (
	"sort"
	"time"

	"root_tycoon/internal/domain"
)

// ServerType is a catalog entry for purchasable servers.
type ServerType struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	IncomePerMinute float64       `json:"income_per_minute"`
	MonthlyCost     int64         `json:"monthly_cost"`
	Price           int64         `json:"price"`
	RequiredLevel   int           `json:"required_level"`
	RequiredCourse  string        `json:"required_course,omitempty"`
	BuildTime       time.Duration `json:"build_time"`
}

// Course is a catalog entry for learning courses.
type Course struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Price         int64             `json:"price"`
	Duration      time.Duration     `json:"duration"`
	RequiredLevel int               `json:"required_level"`
	Reward        domain.RewardType `json:"reward_type"`
	Amount        int               `json:"amount,omitempty"`
	ServerType    string            `json:"server_type,omitempty"`
}

// Job is a catalog entry for cooldown-gated jobs.
type Job struct {
	ID            domain.JobType `json:"id"`
	Name          string         `json:"name"`
	Reward        int64          `json:"reward"`
	Experience    int64          `json:"experience"`
	RequiredLevel int            `json:"required_level"`
}

// QuestTemplate is the base definition of a daily quest.
type QuestTemplate struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Requirement domain.RequirementType `json:"requirement"`
	Target      int64                  `json:"target"`
	Reward      int64                  `json:"reward"`
}

const (
	JobScriptFix     domain.JobType = "script_fix"
	JobNetworkSetup  domain.JobType = "network_setup"
	JobSecurityAudit domain.JobType = "security_audit"
)

var ServerTypes = map[string]ServerType{
	"basic": {
		ID: "basic", Name: "Basic VPS", IncomePerMinute: 50, MonthlyCost: 500,
		Price: 1000, RequiredLevel: 1, BuildTime: time.Minute,
	},
	"standard": {
		ID: "standard", Name: "Standard Server", IncomePerMinute: 150, MonthlyCost: 1500,
		Price: 5000, RequiredLevel: 3, BuildTime: 5 * time.Minute,
	},
	"advanced": {
		ID: "advanced", Name: "Advanced Server", IncomePerMinute: 400, MonthlyCost: 4000,
		Price: 15000, RequiredLevel: 5, RequiredCourse: "server_admin", BuildTime: 15 * time.Minute,
	},
	"enterprise": {
		ID: "enterprise", Name: "Enterprise Cluster", IncomePerMinute: 1000, MonthlyCost: 10000,
		Price: 50000, RequiredLevel: 10, RequiredCourse: "cloud_architect", BuildTime: 30 * time.Minute,
	},
	"quantum": {
		ID: "quantum", Name: "Quantum Node", IncomePerMinute: 3000, MonthlyCost: 30000,
		Price: 200000, RequiredLevel: 20, RequiredCourse: "quantum_computing", BuildTime: time.Hour,
	},
}

var Courses = map[string]Course{
	"linux_basics": {
		ID: "linux_basics", Name: "Linux Basics", Price: 5000, Duration: 30 * time.Minute,
		RequiredLevel: 1, Reward: domain.RewardServerSlots, Amount: 2,
	},
	"networking": {
		ID: "networking", Name: "Networking", Price: 15000, Duration: 2 * time.Hour,
		RequiredLevel: 3, Reward: domain.RewardServerSlots, Amount: 3,
	},
	"optimization": {
		ID: "optimization", Name: "Performance Optimization", Price: 20000, Duration: 3 * time.Hour,
		RequiredLevel: 5, Reward: domain.RewardEfficiency, Amount: 10,
	},
	"server_admin": {
		ID: "server_admin", Name: "Server Administration", Price: 25000, Duration: 4 * time.Hour,
		RequiredLevel: 5, Reward: domain.RewardServerUnlock, ServerType: "advanced",
	},
	"automation": {
		ID: "automation", Name: "Automation", Price: 60000, Duration: 6 * time.Hour,
		RequiredLevel: 8, Reward: domain.RewardEfficiency, Amount: 15,
	},
	"cloud_architect": {
		ID: "cloud_architect", Name: "Cloud Architecture", Price: 75000, Duration: 8 * time.Hour,
		RequiredLevel: 10, Reward: domain.RewardServerUnlock, ServerType: "enterprise",
	},
	"quantum_computing": {
		ID: "quantum_computing", Name: "Quantum Computing", Price: 250000, Duration: 24 * time.Hour,
		RequiredLevel: 20, Reward: domain.RewardServerUnlock, ServerType: "quantum",
	},
}

var Jobs = map[domain.JobType]Job{
	JobScriptFix:     {ID: JobScriptFix, Name: "Fix a script", Reward: 100, Experience: 10, RequiredLevel: 1},
	JobNetworkSetup:  {ID: JobNetworkSetup, Name: "Set up a network", Reward: 250, Experience: 25, RequiredLevel: 2},
	JobSecurityAudit: {ID: JobSecurityAudit, Name: "Security audit", Reward: 500, Experience: 50, RequiredLevel: 4},
}

var DailyQuests = []QuestTemplate{
	{ID: "daily_jobs", Title: "Complete 5 jobs", Requirement: domain.RequirementJob, Target: 5, Reward: 500},
	{ID: "daily_grind", Title: "Complete 15 jobs", Requirement: domain.RequirementJob, Target: 15, Reward: 2000},
	{ID: "daily_income", Title: "Earn 10000 from servers", Requirement: domain.RequirementIncome, Target: 10000, Reward: 1500},
}

// SortedServerTypes returns the server catalog ordered by price.
func SortedServerTypes() []ServerType {
	out := make([]ServerType, 0, len(ServerTypes))
	for _, st := range ServerTypes {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// SortedCourses returns the course catalog ordered by price.
func SortedCourses() []Course {
	out := make([]Course, 0, len(Courses))
	for _, c := range Courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// SortedJobs returns the job catalog ordered by reward.
func SortedJobs() []Job {
	out := make([]Job, 0, len(Jobs))
	for _, j := range Jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reward < out[j].Reward })
	return out
}
