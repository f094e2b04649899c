package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known applicant tracking system hosting job postings.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
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
		content:  []string{".job__description", ".job-post-container", "#content"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']"},
	},
}

// commonNoise applies to every job posting regardless of platform.
var commonNoise = []string{
	"form",
	".application-form",
	".eeo-statement",
	".voluntary-disclosure",
	".social-share",
	".cookie-consent",
}

// DetectPlatform identifies the job board from a posting URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Host)
	for _, r := range platformRules {
		for _, h := range r.hosts {
			if strings.Contains(host, h) {
				return r.platform
			}
		}
	}
	return PlatformUnknown
}

// Selectors returns the content and noise selectors for a platform.
func Selectors(p Platform) (content, noise []string) {
	noise = append([]string(nil), commonNoise...)
	for _, r := range platformRules {
		if r.platform == p {
			return r.content, append(noise, r.noise...)
		}
	}
	return JobPostingSelectors(), noise
}
