package email

import "strings"

type EmailBodyBuilder interface {
	WithHeadline(text string) EmailBodyBuilder
	WithParagraph(text string) EmailBodyBuilder
	WithHtml(text string) EmailBodyBuilder
	Build() string
}

type PlainButtonedBodyBuilder struct {
	headline    string
	bodyContent []string
}

func (b *PlainButtonedBodyBuilder) WithHeadline(text string) EmailBodyBuilder {
	b.headline = text
	return b
}

func (b *PlainButtonedBodyBuilder) WithParagraph(text string) EmailBodyBuilder {
	b.bodyContent = append(b.bodyContent, styledParagraph(text))
	return b
}

func (b *PlainButtonedBodyBuilder) WithHtml(text string) EmailBodyBuilder {
	b.bodyContent = append(b.bodyContent, text)
	return b
}

func (b *PlainButtonedBodyBuilder) Build() string {
	headline := ""
	if b.headline != "" {
		headline = `<h1 style="font-family: Helvetica, sans-serif; font-size: 22px; font-weight: bold; margin: 0 0 16px 0;">` + b.headline + `</h1>`
	}
	return `<!doctype html>
<html lang="en">
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
  </head>
  <body style="font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.3; background-color: #f4f5f6; margin: 0; padding: 0;">
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%" bgcolor="#f4f5f6">
      <tr>
        <td>&nbsp;</td>
        <td width="600" style="max-width: 600px; padding: 24px 0;">
          <div style="background: #ffffff; border: 1px solid #eaebed; border-radius: 16px; padding: 24px;">
            ` + headline + strings.Join(b.bodyContent, "") + `
          </div>
        </td>
        <td>&nbsp;</td>
      </tr>
    </table>
  </body>
</html>`
}

func styledParagraph(text string) string {
	return `<p style="font-family: Helvetica, sans-serif; font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">` + text + `</p>`
}

func styledButton(url, label string) string {
	return `<p style="margin: 24px 0;"><a href="` + url + `" style="background-color: #2f5fdd; border-radius: 6px; color: #ffffff; display: inline-block; font-family: Helvetica, sans-serif; font-size: 16px; padding: 12px 24px; text-decoration: none;">` + label + `</a></p>`
}
