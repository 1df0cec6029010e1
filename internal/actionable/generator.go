// Package actionable turns a categorized, prioritized record into the
// department, actions and escalation chain an officer should follow.
package actionable

import (
	"vanmitra-feedback/internal/types"
)

const (
	defaultDepartment = "District Administration"
	urgentAction      = "URGENT: Escalate to senior officials immediately"
	immediateCount    = 3
)

type playbook struct {
	Department string
	Actions    []string
	Metrics    []string
}

var playbooks = map[string]playbook{
	types.CategoryForestRights: {
		Department: "Forest Department & Tribal Affairs",
		Actions: []string{
			"File complaint with Forest Department",
			"Contact legal aid services",
			"Document evidence with photos/videos",
			"Organize community meeting",
			"Reach out to environmental NGOs",
		},
		Metrics: []string{"Forest cover maintained", "Illegal activities stopped", "Rights documentation completed"},
	},
	types.CategoryHealthcare: {
		Department: "Health Department & Public Health",
		Actions: []string{
			"Contact District Medical Officer",
			"Request mobile health camp",
			"Apply for community health center",
			"Connect with health NGOs",
			"Document health emergencies",
		},
		Metrics: []string{"Health facility established", "Medical staff available", "Health indicators improved"},
	},
	types.CategoryEducation: {
		Department: "Education Department & Child Welfare",
		Actions: []string{
			"Contact Block Education Officer",
			"Request teacher recruitment",
			"Apply for infrastructure development",
			"Organize parent-teacher meeting",
			"Connect with education NGOs",
		},
		Metrics: []string{"School infrastructure completed", "Teachers recruited", "Enrollment increased"},
	},
	types.CategoryWaterSupply: {
		Department: "Water Resources & Rural Development",
		Actions: []string{
			"Contact Water Department",
			"Apply for bore well/hand pump",
			"Request water tanker service",
			"Form water user committee",
			"Document water quality issues",
		},
		Metrics: []string{"Clean water access", "Water quality improved", "Consistent supply established"},
	},
	types.CategoryEmployment: {
		Department: "Labor Department & Skill Development",
		Actions: []string{
			"Contact employment office",
			"Apply for skill development programs",
			"Register for MGNREGA",
			"Form self-help groups",
			"Connect with microfinance institutions",
		},
		Metrics: []string{"Jobs created", "Skills developed", "Income increased"},
	},
	types.CategoryInfrastructure: {
		Department: "Public Works & Rural Development",
		Actions: []string{
			"Contact PWD/Rural Development",
			"Submit development proposal",
			"Form village development committee",
			"Apply for infrastructure funds",
			"Document connectivity issues",
		},
		Metrics: []string{"Infrastructure completed", "Connectivity improved", "Service access enhanced"},
	},
	// Cultural Preservation has a department but shares the generic actions.
	types.CategoryCulturalPreservation: {
		Department: "Cultural Affairs & Tribal Welfare",
	},
}

var (
	genericActions = []string{
		"Contact district administration",
		"File formal complaint",
		"Organize community meeting",
		"Document the issue",
		"Seek NGO assistance",
	}
	genericMetrics = []string{"Issue resolved", "Community satisfied", "Service improved"}
)

var escalationPaths = map[string][]string{
	types.PriorityHigh:   {"Local Official", "Block Officer", "District Collector", "State Government"},
	types.PriorityMedium: {"Local Official", "Block Officer", "District Officer"},
	types.PriorityLow:    {"Local Official", "Block Officer"},
}

// Generate builds the insights for a record. The returned slices are fresh
// copies and safe to modify.
func Generate(cat types.Category, sent types.Sentiment, pri types.Priority) types.Insights {
	pb := playbooks[cat.Primary]

	dept := pb.Department
	if dept == "" {
		dept = defaultDepartment
	}
	actions := pb.Actions
	if len(actions) == 0 {
		actions = genericActions
	}
	metrics := pb.Metrics
	if len(metrics) == 0 {
		metrics = genericMetrics
	}

	all := make([]string, 0, len(actions)+1)
	if sent.Label == types.SentimentNegative && pri.Level == types.PriorityHigh {
		all = append(all, urgentAction)
	}
	all = append(all, actions...)

	n := min(immediateCount, len(all))
	return types.Insights{
		Department:       dept,
		ImmediateActions: clone(all[:n]),
		FollowUpActions:  clone(all[n:]),
		EscalationPath:   EscalationPath(pri.Level),
		SuccessMetrics:   clone(metrics),
		Timeline:         pri.Timeline,
	}
}

// EscalationPath lists the offices to escalate through, lowest first.
func EscalationPath(level string) []string {
	if p, ok := escalationPaths[level]; ok {
		return clone(p)
	}
	return []string{"Local Official"}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
