package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwygoda/rentscan/internal/domain"
)

const kvartirkaCardOpen = `<li class="flat-card_root__Uuvel flat-list-item_item__Ei9_x flat-list-item_card___MR1H">`

const kvartirkaPage = `<html><body><ul>` +
	kvartirkaCardOpen + `
  <a class="flat-card_link__okzL_" href="/moscow/flat/777/">
    <span class="flat-card-info_buildingType__ZNUgY">1-комнатная квартира</span>
  </a>
  <span class="flat-subway_text__r3OuS">Сокол,
 5 мин пешком</span>
  <span class="address_root__tRWWF">Ленинградский пр-т, 74</span>
  <div class="price_root__o0FPR">2 800
 ₽/сутки</div>
</li>` +
	kvartirkaCardOpen + `
  <a class="flat-card_link__okzL_" href="https://kvartirka.com/moscow/flat/778/">
    <span class="flat-card-info_buildingType__ZNUgY">Студия</span>
  </a>
  <span class="address_root__tRWWF">  Новый   Арбат,  10 </span>
  <div class="price_root__o0FPR">4500 ₽</div>
</li>` +
	kvartirkaCardOpen + `
  <a class="flat-card_link__okzL_" href="/moscow/flat/779/">
    <span class="flat-card-info_buildingType__ZNUgY">Без адреса</span>
  </a>
  <div class="price_root__o0FPR">1 000 ₽</div>
</li>
</ul></body></html>`

func TestKvartirka_Extract(t *testing.T) {
	ex, err := Kvartirka.Extract(kvartirkaPage)
	require.NoError(t, err)
	require.Len(t, ex.Listings, 2)

	metro := ex.Listings[0]
	assert.Equal(t, "1-комнатная квартира", metro.Name)
	assert.Equal(t, "Рядом со станцией метро Сокол, 5 мин пешком", metro.Address)
	assert.Equal(t, "2 800 ₽/сутки", metro.PriceDisplay)
	assert.Equal(t, int64(2), metro.PriceValue)
	assert.Equal(t, "https://kvartirka.com/moscow/flat/777/", metro.URL)

	street := ex.Listings[1]
	assert.Equal(t, " Новый Арбат, 10 ", street.Address)
	assert.Equal(t, int64(4500), street.PriceValue)
	assert.Equal(t, "https://kvartirka.com/moscow/flat/778/", street.URL)
}

func TestKvartirka_Extract_SkipsCardWithoutAddress(t *testing.T) {
	ex, err := Kvartirka.Extract(kvartirkaPage)
	require.NoError(t, err)
	require.Len(t, ex.Skipped, 1)
	assert.ErrorIs(t, ex.Skipped[0], domain.ErrMissingField)
}

func TestKvartirka_Extract_PriceWithoutDigits(t *testing.T) {
	markup := kvartirkaCardOpen + `
		<a class="flat-card_link__okzL_" href="/1/"><span class="flat-card-info_buildingType__ZNUgY">Дом</span></a>
		<span class="address_root__tRWWF">Москва</span>
		<div class="price_root__o0FPR">договорная</div>
	</li>`

	ex, err := Kvartirka.Extract(markup)
	require.NoError(t, err)
	assert.Empty(t, ex.Listings)
	require.Len(t, ex.Skipped, 1)
	assert.ErrorIs(t, ex.Skipped[0], domain.ErrPriceFormat)
}

func TestKvartirka_Extract_IgnoresOtherListItems(t *testing.T) {
	markup := `<ul><li class="flat-card_root__Uuvel">
		<a class="flat-card_link__okzL_" href="/1/"><span class="flat-card-info_buildingType__ZNUgY">Дом</span></a>
		<span class="address_root__tRWWF">Москва</span>
		<div class="price_root__o0FPR">1000</div>
	</li></ul>`

	ex, err := Kvartirka.Extract(markup)
	require.NoError(t, err)
	assert.Empty(t, ex.Listings)
	assert.Empty(t, ex.Skipped)
}
