package verification

import "talentdesk/internal/domain"

// CanApproveAll reports whether a talent's submission set is fully reviewable:
// every required document type is pending review. A set with not-yet-reviewed
// gaps (anything not submitted, or already decided) cannot be bulk-approved.
func CanApproveAll(docs map[domain.DocumentType]domain.Document) bool {
	for _, dt := range domain.RequiredDocumentTypes {
		if status(docs, dt) != domain.DocumentPendingReview {
			return false
		}
	}
	return true
}

// IsReviewReady reports whether a talent belongs in the review queue: the
// submission set is complete (no required type missing) but not fully
// resolved (at least one document still pending).
func IsReviewReady(docs map[domain.DocumentType]domain.Document) bool {
	pending := false
	for _, dt := range domain.RequiredDocumentTypes {
		switch status(docs, dt) {
		case domain.DocumentNotSubmitted:
			return false
		case domain.DocumentPendingReview:
			pending = true
		}
	}
	return pending
}

func status(docs map[domain.DocumentType]domain.Document, dt domain.DocumentType) domain.DocumentStatus {
	if d, ok := docs[dt]; ok {
		return d.Status
	}
	return domain.DocumentNotSubmitted
}
