// Package skills detects known technical skills in resume text.
package skills

// Category is a named group of canonical skill names.
type Category struct {
	Name   string
	Skills []string
}

// Taxonomy is the fixed skill catalogue. Category and skill order defines
// the order in which detected skills are reported.
var Taxonomy = []Category{
	{
		Name: "programming",
		Skills: []string{
			"JavaScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Go",
			"Rust", "Swift", "Kotlin", "Scala", "TypeScript", "R", "MATLAB",
			"SQL", "HTML", "CSS", "Perl",
		},
	},
	{
		Name: "frameworks",
		Skills: []string{
			"React", "Angular", "Vue.js", "Node.js", "Express", "Django",
			"Flask", "Spring", "Laravel", "Rails", "Bootstrap", "jQuery",
			"Svelte", "Next.js", "Nuxt.js",
		},
	},
	{
		Name: "databases",
		Skills: []string{
			"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
			"Oracle", "SQLite", "Cassandra", "DynamoDB", "Neo4j", "MariaDB",
		},
	},
	{
		Name: "cloud",
		Skills: []string{
			"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins",
			"GitLab CI", "CircleCI", "Terraform", "Ansible", "Heroku",
			"Vercel", "Netlify",
		},
	},
	{
		Name: "tools",
		Skills: []string{
			"Git", "GitHub", "GitLab", "Jira", "Confluence", "Slack",
			"VS Code", "IntelliJ", "Eclipse", "Postman", "Figma",
			"Adobe Creative Suite",
		},
	},
	{
		Name: "methodologies",
		Skills: []string{
			"Agile", "Scrum", "Kanban", "DevOps", "CI/CD", "TDD",
			"Microservices", "REST", "GraphQL", "Machine Learning", "AI",
			"Data Science", "Blockchain",
		},
	},
}

// AllSkills flattens the taxonomy into a single ordered list.
func AllSkills() []string {
	var all []string
	for _, c := range Taxonomy {
		all = append(all, c.Skills...)
	}
	return all
}

// CategoryOf returns the category name of a canonical skill, or "" if the
// skill is not in the taxonomy.
func CategoryOf(skill string) string {
	for _, c := range Taxonomy {
		for _, s := range c.Skills {
			if s == skill {
				return c.Name
			}
		}
	}
	return ""
}
