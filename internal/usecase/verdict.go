package usecase

import (
	"github.com/Totanopti/gocomapare-2/internal/domain"
)

// Eligibility display labels. Eligible and Restricted double as both status
// and label; the two Unknown flavors get distinct labels so a caller can tell
// a provider outage from an ASIN the provider simply didn't report on.
const (
	labelAPIError = "API Error"
	labelNotFound = "Not Found"

	reasonEligible   = "Seller is eligible to sell this product"
	reasonRestricted = "Seller is not eligible to sell this product"
	reasonNotFound   = "ASIN not found in eligibility results"
)

// rawDetailLimit caps how much provider error detail leaks into a reason
const rawDetailLimit = 50

// resolveVerdict derives the verdict for one ASIN from the single batched
// eligibility response. It never fails: provider failure and missing entries
// both degrade to Unknown with a descriptive label.
func resolveVerdict(result domain.EligibilityResult, asin string) domain.EligibilityVerdict {
	if !result.OK {
		reason := result.ErrorReason
		if reason == "" {
			reason = "No eligibility data received"
		}
		if result.RawDetail != "" {
			reason += ": " + elide(result.RawDetail, rawDetailLimit)
		}
		return domain.EligibilityVerdict{
			Status: domain.VerdictUnknown,
			Label:  labelAPIError,
			Reason: reason,
		}
	}

	for _, item := range result.Items {
		if item.ASIN != asin {
			continue
		}
		if item.Eligible {
			return domain.EligibilityVerdict{
				Status: domain.VerdictEligible,
				Label:  string(domain.VerdictEligible),
				Reason: reasonEligible,
			}
		}
		return domain.EligibilityVerdict{
			Status: domain.VerdictRestricted,
			Label:  string(domain.VerdictRestricted),
			Reason: reasonRestricted,
		}
	}

	return domain.EligibilityVerdict{
		Status: domain.VerdictUnknown,
		Label:  labelNotFound,
		Reason: reasonNotFound,
	}
}

// elide caps the detail at n bytes. The trailing ellipsis is unconditional:
// it marks the text as provider detail rather than signalling truncation.
func elide(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return s + "..."
}
