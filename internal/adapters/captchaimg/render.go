// Rendu PNG du code CAPTCHA: bruit de fond, lignes, glyphes distordus.
// Le code est généré par le service, on ne fait ici que le dessiner.
package captchaimg

import (
	"bytes"
	"image/color"

	"github.com/mojocn/base64Captcha"
)

const (
	imgWidth   = 380
	imgHeight  = 140
	noiseCount = 120
)

type Renderer struct {
	driver *base64Captcha.DriverString
}

func New(alphabet string, codeLen int) *Renderer {
	driver := base64Captcha.NewDriverString(
		imgHeight, imgWidth,
		noiseCount,
		base64Captcha.OptionShowHollowLine|base64Captcha.OptionShowSlimeLine,
		codeLen,
		alphabet,
		&color.RGBA{R: 245, G: 245, B: 245, A: 255},
		nil, // fonts embarquées
		[]string{"wqy-microhei.ttc"},
	)
	return &Renderer{driver: driver}
}

// RenderPNG dessine le code donné et renvoie les octets PNG.
func (r *Renderer) RenderPNG(code string) ([]byte, error) {
	item, err := r.driver.DrawCaptcha(code)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := item.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
