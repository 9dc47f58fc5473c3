package synthetic

import "crmdash/internal/domain/entity"

// The fixture dataset is hand-authored and fixed for the process lifetime.
// The counts are load-bearing: 5 accounts, 7 opportunities, 7 stage groups
// and 5 industry groups form the regression baseline for demo-mode reads.

var fixtureAccounts = &entity.QueryResult{
	TotalSize: 10,
	Done:      true,
	Records: []entity.Record{
		{
			"Id": "001SY000003kR2tYAE", "Name": "Helio Systems",
			"Industry": "Technology", "AnnualRevenue": 50000000.0,
			"NumberOfEmployees": 250.0, "Phone": "(415) 555-0134",
			"Website": "https://heliosystems.example.com",
			"BillingCity": "San Francisco", "BillingCountry": "United States",
			"CreatedDate": "2024-01-15T10:30:00.000+0000",
		},
		{
			"Id": "001SY000003kR2uYAE", "Name": "Meridian Capital Group",
			"Industry": "Finance", "AnnualRevenue": 120000000.0,
			"NumberOfEmployees": 500.0, "Phone": "(212) 555-0188",
			"Website": "https://meridiancapital.example.com",
			"BillingCity": "New York", "BillingCountry": "United States",
			"CreatedDate": "2024-02-10T14:20:00.000+0000",
		},
		{
			"Id": "001SY000003kR2vYAE", "Name": "Cartwheel Retail Co.",
			"Industry": "Retail", "AnnualRevenue": 80000000.0,
			"NumberOfEmployees": 1200.0, "Phone": "(312) 555-0121",
			"Website": "https://cartwheelretail.example.com",
			"BillingCity": "Chicago", "BillingCountry": "United States",
			"CreatedDate": "2024-03-05T09:15:00.000+0000",
		},
		{
			"Id": "001SY000003kR2wYAE", "Name": "Ironforge Manufacturing",
			"Industry": "Manufacturing", "AnnualRevenue": 150000000.0,
			"NumberOfEmployees": 800.0, "Phone": "(313) 555-0167",
			"Website": "https://ironforge.example.com",
			"BillingCity": "Detroit", "BillingCountry": "United States",
			"CreatedDate": "2024-04-20T11:45:00.000+0000",
		},
		{
			"Id": "001SY000003kR2xYAE", "Name": "Bluebird Health Partners",
			"Industry": "Healthcare", "AnnualRevenue": 90000000.0,
			"NumberOfEmployees": 450.0, "Phone": "(617) 555-0149",
			"Website": "https://bluebirdhealth.example.com",
			"BillingCity": "Boston", "BillingCountry": "United States",
			"CreatedDate": "2024-05-12T16:00:00.000+0000",
		},
	},
}

var fixtureOpportunities = &entity.QueryResult{
	TotalSize: 15,
	Done:      true,
	Records: []entity.Record{
		{
			"Id": "006SY000001p8a1YAA", "Name": "Cloud Platform Rollout",
			"AccountId": "001SY000003kR2tYAE",
			"Account":   map[string]any{"Name": "Helio Systems"},
			"Amount":    5000000.0, "StageName": "Prospecting",
			"Probability": 10.0, "CloseDate": "2024-12-31",
			"CreatedDate": "2024-06-01T10:00:00.000+0000",
		},
		{
			"Id": "006SY000001p8a2YAA", "Name": "Security Suite Upgrade",
			"AccountId": "001SY000003kR2uYAE",
			"Account":   map[string]any{"Name": "Meridian Capital Group"},
			"Amount":    8000000.0, "StageName": "Qualification",
			"Probability": 20.0, "CloseDate": "2024-11-30",
			"CreatedDate": "2024-06-15T11:30:00.000+0000",
		},
		{
			"Id": "006SY000001p8a3YAA", "Name": "Point-of-Sale Refresh",
			"AccountId": "001SY000003kR2vYAE",
			"Account":   map[string]any{"Name": "Cartwheel Retail Co."},
			"Amount":    12000000.0, "StageName": "Needs Analysis",
			"Probability": 30.0, "CloseDate": "2024-10-31",
			"CreatedDate": "2024-07-01T09:00:00.000+0000",
		},
		{
			"Id": "006SY000001p8a4YAA", "Name": "Production Line Automation",
			"AccountId": "001SY000003kR2wYAE",
			"Account":   map[string]any{"Name": "Ironforge Manufacturing"},
			"Amount":    15000000.0, "StageName": "Value Proposition",
			"Probability": 50.0, "CloseDate": "2024-09-30",
			"CreatedDate": "2024-07-15T14:20:00.000+0000",
		},
		{
			"Id": "006SY000001p8a5YAA", "Name": "Patient Records Migration",
			"AccountId": "001SY000003kR2xYAE",
			"Account":   map[string]any{"Name": "Bluebird Health Partners"},
			"Amount":    20000000.0, "StageName": "Proposal/Price Quote",
			"Probability": 60.0, "CloseDate": "2024-08-31",
			"CreatedDate": "2024-08-01T10:30:00.000+0000",
		},
		{
			"Id": "006SY000001p8a6YAA", "Name": "AI Advisory Engagement",
			"AccountId": "001SY000003kR2tYAE",
			"Account":   map[string]any{"Name": "Helio Systems"},
			"Amount":    3000000.0, "StageName": "Negotiation/Review",
			"Probability": 80.0, "CloseDate": "2024-07-31",
			"CreatedDate": "2024-08-10T15:00:00.000+0000",
		},
		{
			"Id": "006SY000001p8a7YAA", "Name": "Analytics Platform License",
			"AccountId": "001SY000003kR2uYAE",
			"Account":   map[string]any{"Name": "Meridian Capital Group"},
			"Amount":    10000000.0, "StageName": "Closed Won",
			"Probability": 100.0, "CloseDate": "2024-06-30",
			"CreatedDate": "2024-05-01T12:00:00.000+0000",
		},
	},
}

var fixtureStageDistribution = &entity.QueryResult{
	TotalSize: 7,
	Done:      true,
	Records: []entity.Record{
		{"StageName": "Prospecting", "total": 2.0, "totalAmount": 8000000.0},
		{"StageName": "Qualification", "total": 3.0, "totalAmount": 15000000.0},
		{"StageName": "Needs Analysis", "total": 2.0, "totalAmount": 18000000.0},
		{"StageName": "Value Proposition", "total": 1.0, "totalAmount": 15000000.0},
		{"StageName": "Proposal/Price Quote", "total": 2.0, "totalAmount": 25000000.0},
		{"StageName": "Negotiation/Review", "total": 1.0, "totalAmount": 3000000.0},
		{"StageName": "Closed Won", "total": 4.0, "totalAmount": 45000000.0},
	},
}

var fixtureIndustryDistribution = &entity.QueryResult{
	TotalSize: 5,
	Done:      true,
	Records: []entity.Record{
		{"Industry": "Technology", "total": 3.0},
		{"Industry": "Finance", "total": 2.0},
		{"Industry": "Retail", "total": 2.0},
		{"Industry": "Manufacturing", "total": 2.0},
		{"Industry": "Healthcare", "total": 1.0},
	},
}

var fixtureMonthlyVolume = &entity.QueryResult{
	TotalSize: 6,
	Done:      true,
	Records: []entity.Record{
		{"month": 5.0, "total": 1.0},
		{"month": 6.0, "total": 2.0},
		{"month": 7.0, "total": 2.0},
		{"month": 8.0, "total": 2.0},
		{"month": 9.0, "total": 1.0},
		{"month": 10.0, "total": 1.0},
	},
}
