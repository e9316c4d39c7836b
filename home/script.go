package home

// finderScript is the inline client script for the finder page. It owns no
// filter logic of its own: every control change is posted to /filters and the
// returned state re-rendered, so the server reducer is the single source of
// truth.
var finderScript = `
var state = BOOT.defaults;
var T = BOOT.strings;
var map, markers, selectedId = null, searching = false;

function esc(s) {
  var d = document.createElement('div');
  d.textContent = s == null ? '' : s;
  return d.innerHTML;
}

function cityOf(id) {
  for (var i = 0; i < BOOT.cities.length; i++) {
    if (BOOT.cities[i].id === id) return BOOT.cities[i];
  }
  return null;
}

function initMap() {
  var city = cityOf(state.city) || BOOT.cities[0];
  map = L.map('map', { zoomControl: true }).setView([city.lat, city.lng], 13);
  L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
    maxZoom: 19,
    attribution: '&copy; OpenStreetMap contributors'
  }).addTo(map);
  markers = L.layerGroup().addTo(map);
}

function recenter() {
  var city = cityOf(state.city);
  if (city) map.setView([city.lat, city.lng], 13);
}

// Rebuild the dependent selects from the bootstrap catalog after every
// reducer response.
function syncControls() {
  var citySel = document.getElementById('f-city');
  citySel.innerHTML = '';
  BOOT.cities.forEach(function (c) {
    if (c.countryId !== state.country) return;
    var o = document.createElement('option');
    o.value = c.id; o.textContent = c.label;
    citySel.appendChild(o);
  });
  citySel.value = state.city;

  var distSel = document.getElementById('f-district');
  distSel.innerHTML = '';
  var all = document.createElement('option');
  all.value = BOOT.allOption.id; all.textContent = BOOT.allOption.label;
  distSel.appendChild(all);
  BOOT.districts.forEach(function (d) {
    if (d.cityId !== state.city) return;
    var o = document.createElement('option');
    o.value = d.id; o.textContent = d.label;
    distSel.appendChild(o);
  });
  distSel.value = state.district;

  document.getElementById('f-country').value = state.country;
  document.getElementById('f-cuisine').value = state.cuisine;
  document.getElementById('f-rating').value = String(state.minRating);
  document.getElementById('f-price').value = String(state.priceLevel);
  document.getElementById('f-area').value = state.manualArea;
  document.getElementById('f-open').checked = state.openNow;
  document.getElementById('f-wheelchair').checked = state.wheelchair;
  document.getElementById('f-child').checked = state.childFriendly;
  document.getElementById('f-pet').checked = state.petFriendly;
}

function showError(msg) {
  var el = document.getElementById('error-banner');
  el.textContent = msg;
  el.style.display = 'block';
  setTimeout(function () { el.style.display = 'none'; }, 6000);
}

function post(url, body) {
  return fetch(url, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json', 'Accept': 'application/json' },
    body: JSON.stringify(body)
  }).then(function (r) { return r.json(); });
}

function dispatch(key, value) {
  post('/filters', { state: state, event: { key: key, value: value } })
    .then(function (res) {
      state = res.state;
      syncControls();
      if (res.stale) {
        markers.clearLayers();
        document.getElementById('result-list').innerHTML = '';
        document.getElementById('detail-body').innerHTML = '';
        document.getElementById('stale-notice').style.display = 'block';
        recenter();
      }
    })
    .catch(function () { showError(T.networkError); });
}

function clearFilters() {
  post('/filters', { state: state, clear: true })
    .then(function (res) {
      state = res.state;
      syncControls();
      recenter();
    })
    .catch(function () { showError(T.networkError); });
}

function priceTag(level) {
  return level > 0 ? '$'.repeat(level) : '';
}

function renderResults(results) {
  var list = document.getElementById('result-list');
  markers.clearLayers();
  if (!results.length) {
    list.innerHTML = '<p class="empty">' + esc(T.noResults) + '</p>';
    return;
  }
  list.innerHTML = results.map(function (p) {
    var meta = [];
    if (p.rating) meta.push('★ ' + p.rating.toFixed(1) + ' (' + p.userRatingsTotal + ' ' + T.reviews + ')');
    if (p.priceLevel) meta.push(priceTag(p.priceLevel));
    if (p.openNow === true) meta.push(T.openNow);
    return '<div class="card place-card" data-id="' + esc(p.placeId) + '">' +
      (p.photoUrl ? '<img class="place-photo" loading="lazy" src="' + esc(p.photoUrl) + '" alt="">' : '') +
      '<span class="card-title">' + esc(p.name) + '</span>' +
      '<div class="card-meta">' + esc(meta.join(' · ')) + '</div>' +
      '<p class="card-desc">' + esc(p.address) + '</p></div>';
  }).join('');

  results.forEach(function (p) {
    var m = L.marker([p.lat, p.lng]).addTo(markers);
    m.bindPopup(esc(p.name));
    m.on('click', function () { selectPlace(p.placeId, false); });
  });

  list.querySelectorAll('.place-card').forEach(function (card) {
    card.addEventListener('click', function () { selectPlace(card.dataset.id, true); });
  });
}

function doSearch() {
  if (searching) return;
  searching = true;
  var btn = document.querySelector('#search-form button');
  btn.disabled = true;
  document.getElementById('stale-notice').style.display = 'none';
  document.getElementById('loading-overlay').style.display = 'flex';

  var query = document.querySelector('#search-form input').value;
  post('/search', { query: query, state: state, lang: BOOT.lang })
    .then(function (res) {
      if (res.configError) { showError(res.configError); renderResults([]); return; }
      if (res.error) { showError(res.error); return; }
      renderResults(res.results || []);
    })
    .catch(function () { showError(T.networkError); })
    .finally(function () {
      searching = false;
      btn.disabled = false;
      document.getElementById('loading-overlay').style.display = 'none';
    });
}

function selectPlace(id, pan) {
  selectedId = id;
  document.querySelectorAll('.place-card').forEach(function (c) {
    c.classList.toggle('selected', c.dataset.id === id);
  });
  fetch('/place?id=' + encodeURIComponent(id) + '&lang=' + BOOT.lang, {
    headers: { 'Accept': 'application/json' }
  })
    .then(function (r) { return r.json(); })
    .then(function (res) {
      if (!res.place) return;
      renderDetail(res.place);
      // Panning under an open bottom sheet just hides the marker on small
      // screens.
      if (pan && window.innerWidth > 900) map.panTo([res.place.lat, res.place.lng]);
    })
    .catch(function () { showError(T.networkError); });
}

function renderDetail(p) {
  var h = '<h3>' + esc(p.name) + '</h3>';
  var meta = [];
  if (p.rating) meta.push('★ ' + p.rating.toFixed(1) + ' (' + p.userRatingsTotal + ' ' + T.reviews + ')');
  if (p.priceLevel) meta.push(priceTag(p.priceLevel));
  if (meta.length) h += '<div class="card-meta">' + esc(meta.join(' · ')) + '</div>';
  h += '<p>' + esc(p.address) + '</p>';
  if (p.phoneNumber) h += '<p>' + esc(p.phoneNumber) + '</p>';
  if (p.website) {
    h += '<p><a href="' + esc(p.website) + '" target="_blank" rel="noopener">' + esc(T.website) + '</a>';
    if (p.siteDescription) h += '<br><span class="site-preview">' + esc(p.siteDescription) + '</span>';
    h += '</p>';
  }
  if (p.googleMapsUrl) {
    h += '<p><a href="' + esc(p.googleMapsUrl) + '" target="_blank" rel="noopener">' + esc(T.directions) + '</a></p>';
    h += '<details><summary>' + esc(T.share) + '</summary>' +
      '<img class="qr" src="/place/qr?url=' + encodeURIComponent(p.googleMapsUrl) + '" alt="QR"></details>';
  }
  h += '<div id="summary-slot"><button id="summary-btn" class="secondary">' + esc(T.summary) + '</button></div>';
  document.getElementById('detail-body').innerHTML = h;
  document.getElementById('summary-btn').addEventListener('click', function () {
    summarize(p.name, p.address);
  });
}

function renderList(title, items) {
  if (!items || !items.length) return '';
  return '<h4>' + esc(title) + '</h4><ul>' +
    items.map(function (x) { return '<li>' + esc(x) + '</li>'; }).join('') + '</ul>';
}

function summarize(name, address) {
  var slot = document.getElementById('summary-slot');
  slot.innerHTML = '<p class="empty">' + esc(T.loading) + '</p>';
  post('/summary', { name: name, address: address, lang: BOOT.lang })
    .then(function (res) {
      if (res.configError || res.error) {
        slot.innerHTML = '<p class="empty">' + esc(res.configError || res.error) + '</p>';
        return;
      }
      var s = res.summary || {};
      slot.innerHTML = '<h4>' + esc(T.summary) + '</h4>' +
        renderList(T.highlights, s.highlights) +
        renderList(T.disadvantages, s.disadvantages) +
        renderList(T.popularDishes, s.popularDishes);
    })
    .catch(function () { slot.innerHTML = '<p class="empty">' + esc(T.networkError) + '</p>'; });
}

function recommend() {
  var query = document.querySelector('#search-form input').value;
  var body = document.getElementById('detail-body');
  body.innerHTML = '<p class="empty">' + esc(T.loading) + '</p>';
  post('/recommend', { query: query, location: locationText(), lang: BOOT.lang })
    .then(function (res) {
      if (res.configError || res.error) {
        body.innerHTML = '<p class="empty">' + esc(res.configError || res.error) + '</p>';
        return;
      }
      var h = '<h3>' + esc(T.recommend) + '</h3>';
      h += (res.recommendations || []).map(function (r) {
        return '<div class="card"><span class="card-title">' + esc(r.name) + '</span>' +
          '<div class="card-meta">' + esc(r.address) + '</div>' +
          '<p class="card-desc">' + esc(r.reason) + '</p></div>';
      }).join('');
      if (res.sources && res.sources.length) {
        h += '<h4>' + esc(T.sources) + '</h4><ul>' + res.sources.map(function (s) {
          return '<li><a href="' + esc(s.url) + '" target="_blank" rel="noopener">' + esc(s.title || s.url) + '</a></li>';
        }).join('') + '</ul>';
      }
      body.innerHTML = h;
    })
    .catch(function () { body.innerHTML = '<p class="empty">' + esc(T.networkError) + '</p>'; });
}

function locationText() {
  var parts = [];
  if (state.manualArea) parts.push(state.manualArea);
  else if (state.district !== BOOT.allOption.id) {
    BOOT.districts.forEach(function (d) { if (d.id === state.district) parts.push(d.label); });
  }
  var city = cityOf(state.city);
  if (city) parts.push(city.label);
  return parts.join(', ');
}

function bindControls() {
  var bind = function (id, key, prop) {
    document.getElementById(id).addEventListener('change', function (e) {
      dispatch(key, prop === 'checked' ? String(e.target.checked) : e.target.value);
    });
  };
  bind('f-country', 'country');
  bind('f-city', 'city');
  bind('f-district', 'district');
  bind('f-cuisine', 'cuisine');
  bind('f-rating', 'minRating');
  bind('f-price', 'priceLevel');
  bind('f-open', 'openNow', 'checked');
  bind('f-wheelchair', 'wheelchair', 'checked');
  bind('f-child', 'childFriendly', 'checked');
  bind('f-pet', 'petFriendly', 'checked');
  document.getElementById('f-area').addEventListener('change', function (e) {
    dispatch('manualArea', e.target.value);
  });
  document.getElementById('clear-filters').addEventListener('click', clearFilters);
  document.getElementById('recommend').addEventListener('click', recommend);
  document.getElementById('search-form').addEventListener('submit', function (e) {
    e.preventDefault();
    doSearch();
  });
  document.getElementById('sheet-handle').addEventListener('click', function () {
    document.getElementById('sidebar').classList.toggle('open');
  });
}

function locate() {
  if (!navigator.geolocation) return;
  navigator.geolocation.getCurrentPosition(function (pos) {
    L.circleMarker([pos.coords.latitude, pos.coords.longitude], { radius: 6 }).addTo(map);
  }, function (err) {
    // denied or unavailable, keep the city centre
    console.debug('geolocation unavailable:', err && err.message);
  });
}

initMap();
bindControls();
syncControls();
locate();
`
