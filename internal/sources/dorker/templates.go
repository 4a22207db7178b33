// internal/sources/dorker/templates.go
package dorker

// template es una consulta con el marcador {target} y su descripción.
type template struct {
	query       string
	description string
}

const placeholder = "{target}"

const (
	CategorySecurity     = "security"
	CategoryFiles        = "files"
	CategoryTechnology   = "technology"
	CategoryOrganization = "organization"
	CategoryDirectories  = "directories"
)

var securityTemplates = []template{
	{"site:{target} ext:log", "Exposed log files"},
	{"site:{target} intext:password", "Pages containing 'password'"},
	{"site:{target} intext:username password", "Possibly exposed credentials"},
	{`site:{target} intext:"sql syntax near" | intext:"syntax error has occurred" | intext:"incorrect syntax near" | intext:"unexpected end of SQL command" | intext:"Warning: mysql_connect()" | intext:"Warning: mysql_query()" | intext:"Warning: pg_connect()"`, "Exposed SQL errors"},
	{"site:{target} ext:sql | ext:db | ext:backup | ext:bkp | ext:bak | ext:gz | ext:tar", "Possible database backups"},
	{`site:{target} "index of" | "parent directory"`, "Directory listing enabled"},
	{`site:{target} intitle:"Index of" "config.php"`, "Possibly exposed configuration files"},
	{"site:{target} inurl:wp-config.php", "WordPress config files"},
	{`site:{target} inurl:".env" | intext:"APP_ENV" | intext:"DB_PASSWORD"`, "Exposed .env files"},
	{"site:{target} inurl:config | inurl:configuration | inurl:settings", "Configuration files"},
}

var filesTemplates = []template{
	{"site:{target} filetype:pdf", "PDF documents"},
	{"site:{target} filetype:xls OR filetype:xlsx", "Excel spreadsheets"},
	{"site:{target} filetype:doc OR filetype:docx", "Word documents"},
	{"site:{target} filetype:ppt OR filetype:pptx", "PowerPoint presentations"},
	{"site:{target} filetype:txt", "Text files"},
	{"site:{target} filetype:xml | filetype:json | filetype:yaml | filetype:yml", "Structured data files"},
	{"site:{target} filetype:conf | filetype:config | filetype:ini", "Configuration files"},
	{"site:{target} filetype:sh | filetype:bat | filetype:ps1", "Scripts"},
}

var technologyTemplates = []template{
	{"site:{target} inurl:wp-content", "WordPress"},
	{"site:{target} inurl:joomla", "Joomla"},
	{"site:{target} inurl:drupal", "Drupal"},
	{"site:{target} inurl:magento | inurl:shop | inurl:cart", "E-commerce (possibly Magento)"},
	{"site:{target} inurl:admin | inurl:administrator | inurl:login | inurl:signin", "Admin panels"},
	{`site:{target} intitle:"phpMyAdmin" | inurl:phpmyadmin`, "phpMyAdmin"},
	{"site:{target} inurl:api | inurl:swagger | inurl:graphql", "APIs"},
	{"site:{target} inurl:jenkins | inurl:hudson", "Jenkins"},
	{"site:{target} inurl:gitlab", "GitLab"},
	{"site:{target} inurl:jira", "Jira"},
}

// interestingDirs se sondean con site:{target} inurl:{dir}.
var interestingDirs = []string{
	"admin", "dev", "staging", "test", "beta", "config", "backup", "old",
	"api", "internal", "private", "secret", "secure", "hidden",
}
