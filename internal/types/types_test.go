package types

import (
	"strings"
	"testing"
)

func validResult() AnalysisResult {
	return AnalysisResult{
		Filename: "resume.pdf",
		ATSScore: ATSScore{
			OverallScore: 82.5,
			Grade:        "B",
			SectionScores: map[string]float64{
				"formatting": 85,
				"keywords":   78,
				"experience": 90,
				"education":  80,
				"skills":     82,
			},
		},
	}
}

func TestFileMetaDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		meta FileMeta
		want string
	}{
		{
			name: "half megabyte",
			meta: FileMeta{Name: "resume.pdf", ByteSize: 512 * 1024},
			want: "resume.pdf (512.00 KB)",
		},
		{
			name: "fractional kilobytes",
			meta: FileMeta{Name: "notes.txt", ByteSize: 1536},
			want: "notes.txt (1.50 KB)",
		},
		{
			name: "empty file",
			meta: FileMeta{Name: "empty.txt", ByteSize: 0},
			want: "empty.txt (0.00 KB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.DisplayLabel(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAnalysisResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AnalysisResult)
		wantErr string
	}{
		{
			name:   "valid result",
			mutate: func(r *AnalysisResult) {},
		},
		{
			name: "overall score too high",
			mutate: func(r *AnalysisResult) {
				r.ATSScore.OverallScore = 100.1
			},
			wantErr: "overall score",
		},
		{
			name: "negative overall score",
			mutate: func(r *AnalysisResult) {
				r.ATSScore.OverallScore = -1
			},
			wantErr: "overall score",
		},
		{
			name: "missing section",
			mutate: func(r *AnalysisResult) {
				delete(r.ATSScore.SectionScores, "keywords")
			},
			wantErr: "expected 5 section scores",
		},
		{
			name: "wrong section key",
			mutate: func(r *AnalysisResult) {
				delete(r.ATSScore.SectionScores, "keywords")
				r.ATSScore.SectionScores["layout"] = 50
			},
			wantErr: "missing section score: keywords",
		},
		{
			name: "section score out of range",
			mutate: func(r *AnalysisResult) {
				r.ATSScore.SectionScores["skills"] = 101
			},
			wantErr: "section skills",
		},
		{
			name: "boundary scores are valid",
			mutate: func(r *AnalysisResult) {
				r.ATSScore.OverallScore = 100
				r.ATSScore.SectionScores["formatting"] = 0
				r.ATSScore.SectionScores["skills"] = 100
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validResult()
			tt.mutate(&result)

			err := result.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid result, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
