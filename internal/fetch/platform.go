package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known job boards.
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "[class*='_description']", "main"},
		noise:    []string{"[class*='_applicationForm']"},
	},
	{
		platform: PlatformSmartRecruiters,
		hosts:    []string{"smartrecruiters.com"},
		content:  []string{".job-sections", "[itemprop='description']", "main"},
		noise:    []string{".apply-button", ".job-apply"},
	},
}

// noiseCommon is removed from every job posting regardless of platform.
var noiseCommon = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	if rule, ok := ruleFor(urlStr); ok {
		return rule.platform
	}
	return PlatformUnknown
}

func ruleFor(urlStr string) (platformRule, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return platformRule{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, rule := range platformRules {
		for _, h := range rule.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return rule, true
			}
		}
	}
	return platformRule{}, false
}

func ruleForPlatform(p Platform) (platformRule, bool) {
	for _, rule := range platformRules {
		if rule.platform == p {
			return rule, true
		}
	}
	return platformRule{}, false
}

// PlatformContentSelectors returns content selectors for a platform, falling
// back to JobPostingSelectors for unknown boards.
func PlatformContentSelectors(p Platform) []string {
	if rule, ok := ruleForPlatform(p); ok {
		return rule.content
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus any for the platform.
func PlatformNoiseSelectors(p Platform) []string {
	out := append([]string{}, noiseCommon...)
	if rule, ok := ruleForPlatform(p); ok {
		out = append(out, rule.noise...)
	}
	return out
}
