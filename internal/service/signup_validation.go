package service

import (
	"regexp"
	"strings"

	"github.com/Amos-136/maditrack/internal/domain"
)

// Patterns mirror the signup form: the same checks run client-side, so
// the messages must stay aligned with the front-end strings.
var (
	fullNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)
	orgNamePattern  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ0-9\s.,'&-]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// validateSignup checks every field independently and returns ALL
// violations, in field order, so the caller sees every problem in one
// round trip.
func validateSignup(req SignupRequest) []string {
	var errs []string

	if req.FullName == "" {
		errs = append(errs, "Nom complet requis")
	} else {
		fullName := strings.TrimSpace(req.FullName)
		if len([]rune(fullName)) < 2 || len([]rune(fullName)) > 100 {
			errs = append(errs, "Le nom doit contenir entre 2 et 100 caractères")
		}
		if !fullNamePattern.MatchString(fullName) {
			errs = append(errs, "Le nom contient des caractères invalides")
		}
	}

	if req.OrganizationName == "" {
		errs = append(errs, "Nom de l'organisation requis")
	} else {
		orgName := strings.TrimSpace(req.OrganizationName)
		if len([]rune(orgName)) < 2 || len([]rune(orgName)) > 200 {
			errs = append(errs, "Le nom de l'organisation doit contenir entre 2 et 200 caractères")
		}
		if !orgNamePattern.MatchString(orgName) {
			errs = append(errs, "Le nom de l'organisation contient des caractères invalides")
		}
	}

	if req.Email == "" {
		errs = append(errs, "Email requis")
	} else {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if len(email) > 255 {
			errs = append(errs, "L'email ne peut pas dépasser 255 caractères")
		}
		if !emailPattern.MatchString(email) {
			errs = append(errs, "Email invalide")
		}
	}

	if req.Password == "" {
		errs = append(errs, "Mot de passe requis")
	} else {
		if n := len([]rune(req.Password)); n < 8 || n > 100 {
			errs = append(errs, "Le mot de passe doit contenir entre 8 et 100 caractères")
		}
		if !upperPattern.MatchString(req.Password) {
			errs = append(errs, "Le mot de passe doit contenir au moins une majuscule")
		}
		if !lowerPattern.MatchString(req.Password) {
			errs = append(errs, "Le mot de passe doit contenir au moins une minuscule")
		}
		if !digitPattern.MatchString(req.Password) {
			errs = append(errs, "Le mot de passe doit contenir au moins un chiffre")
		}
	}

	if !isValidCategory(req.OrganizationCategory) {
		errs = append(errs, "Type d'organisation invalide")
	}

	return errs
}

func isValidCategory(category string) bool {
	for _, c := range domain.ValidCategories {
		if category == c {
			return true
		}
	}
	return false
}
