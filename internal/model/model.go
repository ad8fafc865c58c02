// Package model defines domain entities used by services, the state store and gateways.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Activity levels reported during the intake assessment.
const (
	ActivitySedentary  = "sedentaria"
	ActivityActive     = "ativa"
	ActivityVeryActive = "muito_ativa"
)

// Training goals reported during the intake assessment.
const (
	GoalLoseWeight = "emagrecer"
	GoalDefine     = "definir"
	GoalGainMass   = "ganhar_massa"
)

// Training locations reported during the intake assessment.
const (
	LocationHome  = "casa"
	LocationGym   = "academia"
	LocationOther = "outro"
)

// AssessmentData is a snapshot of intake answers plus two facts derived
// once at submission time (BMI and ideal-weight range). The reducer replaces
// it wholesale on update; it is never patched field by field.
type AssessmentData struct {
	Age              int     `json:"age"`
	Height           float64 `json:"height"` // centimeters
	Weight           float64 `json:"weight"` // kilograms
	ActivityLevel    string  `json:"activityLevel"`
	Goal             string  `json:"goal"`
	SleepQuality     int     `json:"sleepQuality"` // 1..5
	FoodQuality      int     `json:"foodQuality"`  // 1..5
	TrainingLocation string  `json:"trainingLocation"`
	BMI              float64 `json:"imc"`
	IdealWeight      string  `json:"idealWeight"` // e.g. "54.2kg - 72.9kg"
}

// User is a funnel account. Email uniquely identifies a user across the
// roster; it is immutable once created.
type User struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	WhatsApp         string          `json:"whatsapp"`
	RegistrationDate time.Time       `json:"registrationDate"`
	Assessment       *AssessmentData `json:"assessment,omitempty"`
	Progress         []int           `json:"progress"` // completed lesson IDs, no duplicates
}

// CompletedLesson reports whether the lesson is already in the progress set.
func (u *User) CompletedLesson(lessonID int) bool {
	for _, id := range u.Progress {
		if id == lessonID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so reducer outputs never alias reducer inputs.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Progress = append([]int(nil), u.Progress...)
	if u.Assessment != nil {
		a := *u.Assessment
		cp.Assessment = &a
	}
	return &cp
}

// Lesson is one catalog entry. Premium lessons do not count toward the
// free-access exhaustion policy.
type Lesson struct {
	ID          int    `json:"id"`
	ModuleID    string `json:"moduleId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoID     string `json:"videoId"`
	Thumbnail   string `json:"thumbnail"`
	Premium     bool   `json:"isVip,omitempty"`
}

// Testimonial is a social-proof entry shown on the landing page.
type Testimonial struct {
	Name    string `json:"name"`
	Text    string `json:"text"`
	Image   string `json:"image"`
	VideoID string `json:"videoId,omitempty"`
}

// Coach describes the program author.
type Coach struct {
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	Image          string   `json:"image"`
	Certifications []string `json:"certifications"`
}

// BeforeAndAfterImage is a student result photo pair.
type BeforeAndAfterImage struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Name   string `json:"name"`
}

// LandingPage holds landing page content.
type LandingPage struct {
	Title               string                `json:"title"`
	Subtitle            string                `json:"subtitle"`
	VSLEnabled          bool                  `json:"vslEnabled"`
	BeforeAndAfter      []BeforeAndAfterImage `json:"beforeAndAfter"`
	BeforeAndAfterTitle string                `json:"beforeAndAfterTitle"`
	BrandName           string                `json:"brandName"`
	PageTitle           string                `json:"pageTitle,omitempty"`
	HeroTitleHighlight  string                `json:"heroTitleHighlight"`
	HeroTitle           string                `json:"heroTitle"`
	HeroSubtitle        string                `json:"heroSubtitle"`
	HeroDescription     string                `json:"heroDescription"`
	HeroImage           string                `json:"heroImage"`
}

// FreeClass is one entry of the free-classes pitch section.
type FreeClass struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// FreeClassesSection holds the free-classes pitch section content.
type FreeClassesSection struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Classes  []FreeClass `json:"classes"`
}

// UpsellPage holds the promotional offer page content.
type UpsellPage struct {
	VideoURL            string   `json:"videoUrl"`
	FullPrice           string   `json:"fullPrice"`
	PromoPrice          string   `json:"promoPrice"`
	Title               string   `json:"title"`
	Subtitle            string   `json:"subtitle"`
	Features            []string `json:"features"`
	MediaType           string   `json:"mediaType"` // "video" or "image"
	ImageURL            string   `json:"imageUrl"`
	SubtitleNoMedia     string   `json:"subtitleNoMedia"`
	InstallmentsEnabled bool     `json:"installmentsEnabled"`
	InstallmentsNumber  int      `json:"installmentsNumber"`
	InstallmentsPrice   string   `json:"installmentsPrice"`
	CTALink             string   `json:"ctaLink"`
}

// AISettings configures the assessment feedback collaborator.
type AISettings struct {
	// AssessmentFeedbackFallback substitutes the generated message on any
	// failure; "{name}" is replaced with the student's name.
	AssessmentFeedbackFallback string `json:"assessmentFeedbackFallback"`
}

// Settings is the single global configuration record. There is exactly one
// settings row system-wide; every structural field present in the compiled-in
// defaults must be present in the resolved settings even when the cached or
// remote copy predates that field.
type Settings struct {
	LandingPage         LandingPage        `json:"landingPage"`
	FreeClassesSection  FreeClassesSection `json:"freeClassesSection"`
	Coach               Coach              `json:"coach"`
	Lessons             []Lesson           `json:"lessons"`
	Testimonials        []Testimonial      `json:"testimonials"`
	UpsellPage          UpsellPage         `json:"upsellPage"`
	AI                  AISettings         `json:"ai"`
	FreeAccessDays      int                `json:"freeAccessDays"` // 0 means unlimited
	OfferCountdownHours int                `json:"offerCountdownHours"`
}

// FreeLessonCount returns the number of catalog lessons not flagged premium.
func (s *Settings) FreeLessonCount() int {
	n := 0
	for _, l := range s.Lessons {
		if !l.Premium {
			n++
		}
	}
	return n
}

// Phase is the application readiness phase. It transitions loading->ready
// exactly once per boot and never reverts.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

// SyncStatus tracks the background user sync. Only meaningful once the
// phase is ready.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)
