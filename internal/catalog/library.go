package catalog

import "github.com/theirongolddev/feeplan/internal/model"

// Base hours are weights at scale 1.0; a target fee rescales them proportionally.
var libraries = map[Discipline][]model.TaskRecord{
	Electrical: {
		{Phase: "SD", Task: "PM / Coordination", BaseHours: 30},
		{Phase: "SD", Task: "Design / Analysis", BaseHours: 70},
		{Phase: "DD", Task: "PM / Coordination", BaseHours: 40},
		{Phase: "DD", Task: "Plans / Schedules", BaseHours: 120},
		{Phase: "CD", Task: "PM / QAQC", BaseHours: 50},
		{Phase: "CD", Task: "Construction Documents", BaseHours: 180},
		{Phase: "Bidding", Task: "Bidding Support", BaseHours: 10},
		{Phase: "CA", Task: "Construction Administration", BaseHours: 120},
	},
	Plumbing: {
		{Phase: "SD", Task: "Sizing / Coordination", BaseHours: 80},
		{Phase: "DD", Task: "Layouts / Coordination", BaseHours: 140},
		{Phase: "CD", Task: "Details / Isometrics", BaseHours: 200},
		{Phase: "Bidding", Task: "Bidding Support", BaseHours: 10},
		{Phase: "CA", Task: "Construction Administration", BaseHours: 120},
	},
	Mechanical: {
		{Phase: "SD", Task: "Preliminary Design", BaseHours: 55},
		{Phase: "DD", Task: "System Design / Modeling", BaseHours: 198},
		{Phase: "CD", Task: "Detailed Design", BaseHours: 134},
		{Phase: "Bidding", Task: "Bidding / CPS", BaseHours: 55},
		{Phase: "CA", Task: "Construction Administration", BaseHours: 60},
	},
}
