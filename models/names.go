package models

var logoString = retrieveLogo()

// RetrieveLogo - retrieves the ascii art logo for GrantLink
func RetrieveLogo() string {
	return logoString
}

// SetLogo - sets the logo ascii art
func SetLogo(logo string) {
	logoString = logo
}

func retrieveLogo() string {
	return `
  ____                 _   _     _       _
 / ___|_ __ __ _ _ __ | |_| |   (_)_ __ | | __
| |  _| '__/ _` + "`" + ` | '_ \| __| |   | | '_ \| |/ /
| |_| | | | (_| | | | | |_| |___| | | | |   <
 \____|_|  \__,_|_| |_|\__|_____|_|_| |_|_|\_\

`
}
