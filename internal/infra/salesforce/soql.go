package salesforce

import "fmt"

// Projected field lists are fixed: the dashboard renders a known set of
// columns, so reads never take caller-supplied projections.
const (
	accountFields = "Id, Name, Industry, AnnualRevenue, NumberOfEmployees, " +
		"Phone, Website, BillingCity, BillingCountry, CreatedDate"
	opportunityFields = "Id, Name, AccountId, Account.Name, Amount, StageName, " +
		"Probability, CloseDate, CreatedDate"
)

func accountListQuery(limit int) string {
	return fmt.Sprintf(
		"SELECT %s FROM Account ORDER BY CreatedDate DESC LIMIT %d",
		accountFields, limit,
	)
}

func opportunityListQuery(limit int) string {
	return fmt.Sprintf(
		"SELECT %s FROM Opportunity ORDER BY CreatedDate DESC LIMIT %d",
		opportunityFields, limit,
	)
}

func stageDistributionQuery() string {
	return "SELECT StageName, COUNT(Id) total, SUM(Amount) totalAmount " +
		"FROM Opportunity GROUP BY StageName"
}

func industryDistributionQuery() string {
	return "SELECT Industry, COUNT(Id) total FROM Account " +
		"WHERE Industry != null GROUP BY Industry ORDER BY COUNT(Id) DESC"
}

func monthlyOpportunityQuery() string {
	return "SELECT CALENDAR_MONTH(CreatedDate) month, COUNT(Id) total " +
		"FROM Opportunity WHERE CreatedDate = THIS_YEAR " +
		"GROUP BY CALENDAR_MONTH(CreatedDate) ORDER BY CALENDAR_MONTH(CreatedDate)"
}
