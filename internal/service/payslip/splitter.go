package payslip

import (
	"strings"

	"github.com/kilangpay/payslip-backend-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// SplitByJobType breaks one payroll record into its per-job shares, in the
// order the job names appear in JobType.
//
// Attribution of an item to a job, in priority order:
//  1. the source-employee mapping, when the item carries the merged staff id
//     it was computed for;
//  2. the explicit job tag set by the payroll engine;
//  3. a case-insensitive substring match of any job name against the item's
//     description or pay code. When several names match, the item goes to
//     every matched job; when none match it is shared across all jobs.
//
// Nothing fails here: unattributable items degrade to shared inclusion, which
// surfaces as duplicated amounts on the per-job pages rather than a hard
// error. Leave records are employee-level and are copied in full into every
// job.
func SplitByJobType(rec *payslip.PayrollRecord) []payslip.IndividualJobPayroll {
	if !rec.IsGrouped() {
		// Single job: wrap the record unchanged. No attribution work.
		return []payslip.IndividualJobPayroll{{
			JobType:           rec.JobType,
			Items:             rec.Items,
			LeaveRecords:      rec.LeaveRecords,
			CommissionRecords: rec.CommissionRecords,
			GrossPayPortion:   rec.GrossPay,
		}}
	}

	jobs := rec.JobTypes()
	jobSet := make(map[string]int, len(jobs))
	for i, j := range jobs {
		jobSet[j] = i
	}

	out := make([]payslip.IndividualJobPayroll, len(jobs))
	for i, j := range jobs {
		out[i].JobType = j
		out[i].LeaveRecords = rec.LeaveRecords
	}

	for _, item := range rec.Items {
		for _, idx := range attributeItem(item, rec.EmployeeJobMapping, jobs, jobSet) {
			out[idx].Items = append(out[idx].Items, item)
		}
	}

	for _, com := range rec.CommissionRecords {
		for _, idx := range matchByName(com.Description, "", jobs) {
			out[idx].CommissionRecords = append(out[idx].CommissionRecords, com)
		}
	}

	leaveTotal := decimal.Zero
	for _, l := range rec.LeaveRecords {
		leaveTotal = leaveTotal.Add(l.AmountPaid)
	}
	for i := range out {
		portion := leaveTotal
		for _, item := range out[i].Items {
			portion = portion.Add(item.Amount)
		}
		for _, com := range out[i].CommissionRecords {
			portion = portion.Add(com.Amount)
		}
		out[i].GrossPayPortion = portion
	}

	return out
}

// attributeItem returns the indexes of the jobs an item belongs to.
func attributeItem(item payslip.PayItem, mapping map[string]string, jobs []string, jobSet map[string]int) []int {
	if item.SourceEmployeeID != nil {
		if job, ok := mapping[*item.SourceEmployeeID]; ok {
			if idx, ok := jobSet[job]; ok {
				return []int{idx}
			}
		}
	}

	if item.JobType != nil {
		if idx, ok := jobSet[*item.JobType]; ok {
			return []int{idx}
		}
	}

	return matchByName(item.Description, item.PayCodeID, jobs)
}

// matchByName attributes by substring: jobs whose name appears in either
// field get the row; with no match at all the row is shared across every job.
// Ambiguous legacy data lands here, so this is deliberately lenient.
func matchByName(description, payCodeID string, jobs []string) []int {
	desc := strings.ToUpper(description)
	code := strings.ToUpper(payCodeID)

	var matched []int
	for i, j := range jobs {
		name := strings.ToUpper(j)
		if name == "" {
			continue
		}
		if strings.Contains(desc, name) || strings.Contains(code, name) {
			matched = append(matched, i)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	all := make([]int, len(jobs))
	for i := range jobs {
		all[i] = i
	}
	return all
}

// NonEmptyJobs filters out jobs with nothing to print. Page assembly drops
// them before rendering per-job pages.
func NonEmptyJobs(jobs []payslip.IndividualJobPayroll) []payslip.IndividualJobPayroll {
	out := make([]payslip.IndividualJobPayroll, 0, len(jobs))
	for _, j := range jobs {
		if len(j.Items) == 0 && len(j.LeaveRecords) == 0 && len(j.CommissionRecords) == 0 {
			continue
		}
		out = append(out, j)
	}
	return out
}
