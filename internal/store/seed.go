package store

import (
	"context"
	"time"

	"vectorhire/internal/applicant"
)

// SeedDemo populates the store with four demo applications when the
// collection is empty. An already-populated store is left alone.
func (s *RecordStore) SeedDemo(ctx context.Context) error {
	if len(s.List(ctx)) > 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	day := int64(24 * time.Hour / time.Millisecond)

	demo := []applicant.Application{
		{
			ID:             "app-1",
			JobID:          "1",
			ApplicantEmail: "ahmed.mohamed@email.com",
			ApplicantName:  "Ahmed Mohamed",
			JobTitle:       "Frontend Engineer",
			FileName:       "ahmed_cv.pdf",
			PDFDataURL:     "data:application/pdf;base64,demo-data",
			CreatedAt:      now - day,
			Status:         applicant.StatusScreened,
			AI: applicant.Verdict{
				Score:  92,
				Passed: true,
				Reasons: []string{
					"Strong experience with React and TypeScript",
					"Varied frontend project portfolio",
					"Technical skills match the requirements",
				},
				Missing: []string{"Accredited technical certifications"},
			},
		},
		{
			ID:             "app-2",
			JobID:          "2",
			ApplicantEmail: "fatima.ali@email.com",
			ApplicantName:  "Fatima Ali",
			JobTitle:       "Accountant",
			FileName:       "fatima_resume.pdf",
			PDFDataURL:     "data:application/pdf;base64,demo-data",
			CreatedAt:      now - 2*day,
			Status:         applicant.StatusScreened,
			AI: applicant.Verdict{
				Score:  67,
				Passed: false,
				Reasons: []string{
					"Basic accounting experience",
					"Working knowledge of Excel",
				},
				Missing: []string{
					"Experience with advanced accounting systems",
					"CPA or equivalent certification",
					"Monthly closing experience",
				},
			},
		},
		{
			ID:             "app-3",
			JobID:          "3",
			ApplicantEmail: "khalid.ahmed@email.com",
			ApplicantName:  "Khalid Ahmed",
			JobTitle:       "Administrative Officer",
			FileName:       "khalid_cv.pdf",
			PDFDataURL:     "data:application/pdf;base64,demo-data",
			CreatedAt:      now - 3*day,
			Status:         applicant.StatusScreened,
			AI: applicant.Verdict{
				Score:  85,
				Passed: true,
				Reasons: []string{
					"Excellent organizational skills",
					"Experience in administrative support",
					"Strong communication skills",
				},
				Missing: []string{"Experience with modern office management systems"},
			},
		},
		{
			ID:             "app-4",
			JobID:          "4",
			ApplicantEmail: "mariam.hassan@email.com",
			ApplicantName:  "Mariam Hassan",
			JobTitle:       "Maintenance Technician",
			FileName:       "mariam_resume.pdf",
			PDFDataURL:     "data:application/pdf;base64,demo-data",
			CreatedAt:      now - 4*day,
			Status:         applicant.StatusScreened,
			AI: applicant.Verdict{
				Score:  74,
				Passed: true,
				Reasons: []string{
					"Hands-on maintenance experience",
					"Familiar with safety tooling",
				},
				Missing: []string{
					"Specialized technical certifications",
					"Preventive maintenance experience",
				},
			},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, demo)
}
