package services

import (
	"time"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

var fixtureNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return fixtureNow.AddDate(0, 0, -n)
}

func newsFixture() []domain.NewsItem {
	return []domain.NewsItem{
		{ID: "n1", Title: "CONTRAN publica Resolução 996", Description: "Norma regula autopropelidos",
			Category: "regulamentacao", Source: "G1", Tags: []string{"contran", "resolução 996"},
			Views: 1000, RelevanceScore: 0.9, PublishedAt: daysAgo(1)},
		{ID: "n2", Title: "Patinete elétrico ganha ciclovias em SP", Description: "Prefeitura amplia rede",
			Category: "mobilidade", Source: "Folha", Tags: []string{"patinete elétrico", "ciclovia"},
			Views: 500, RelevanceScore: 0.7, PublishedAt: daysAgo(3)},
		{ID: "n3", Title: "Vendas de bicicletas elétricas crescem 40%", Description: "Mercado aquecido",
			Category: "mercado", Source: "G1", Tags: []string{"bicicleta elétrica"},
			Views: 200, RelevanceScore: 0.5, PublishedAt: daysAgo(10)},
		{ID: "n4", Title: "Fiscalização de ciclomotores começa", Description: "Blitz exige placa",
			Category: "regulamentacao", Source: "Estadão", Tags: []string{"ciclomotor", "fiscalização", "contran"},
			Views: 800, RelevanceScore: 0.8, PublishedAt: daysAgo(20)},
	}
}

func videoFixture() []domain.VideoItem {
	return []domain.VideoItem{
		{ID: "v1", Title: "Como escolher um patinete elétrico", Channel: "Mobilidade TV", DurationSeconds: 600,
			Views: 10000, Likes: 500, Category: "review", Tags: []string{"patinete elétrico"}, PublishedAt: daysAgo(2)},
		{ID: "v2", Title: "CONTRAN 996 explicada", Channel: "Direito no Trânsito", DurationSeconds: 900,
			Views: 3000, Likes: 200, Category: "educacao", Tags: []string{"contran 996"}, PublishedAt: daysAgo(30)},
		{ID: "v3", Title: "Teste da bicicleta elétrica", Channel: "Mobilidade TV", DurationSeconds: 300,
			Views: 7000, Likes: 300, Category: "review", Tags: []string{"bicicleta elétrica"}, PublishedAt: daysAgo(5)},
	}
}

func vehicleFixture() []domain.VehicleItem {
	return []domain.VehicleItem{
		{ID: "ve1", Name: "Xiaomi Patinete Elétrico 4 Pro", Brand: "Xiaomi", Model: "4 Pro", Type: "patinete",
			Classification: "autopropelido", Features: []string{"app", "freio a disco"},
			Price: 3500, MaxSpeedKmh: 25, Rating: 4.6},
		{ID: "ve2", Name: "Caloi E-Vibe", Brand: "Caloi", Model: "Easy Rider", Type: "bicicleta",
			Classification: "bicicleta_eletrica", Features: []string{"pedal assistido", "app"},
			Price: 7000, MaxSpeedKmh: 25, Rating: 4.8},
		{ID: "ve3", Name: "Segway Ninebot Max G30", Brand: "Segway", Model: "Max G30", Type: "patinete",
			Classification: "autopropelido", Description: "Patinete de longo alcance", Features: []string{"longo alcance"},
			Price: 5000, MaxSpeedKmh: 25, Rating: 4.7},
		{ID: "ve4", Name: "Shineray Jet 50", Brand: "Shineray", Model: "Jet 50", Type: "ciclomotor",
			Classification: "ciclomotor", Features: []string{"emplacamento"},
			Price: 9000, MaxSpeedKmh: 50, RequiresLicense: true, RequiresRegistration: true, Rating: 4.0},
	}
}

func regulationFixture() []domain.RegulationItem {
	return []domain.RegulationItem{
		{ID: "r1", Number: "996", Title: "Resolução CONTRAN nº 996", Summary: "Regulamenta autopropelidos",
			Type: "resolucao", Scope: "federal", Authority: "CONTRAN", Status: "vigente",
			Tags: []string{"autopropelido", "contran"}, EffectiveDate: daysAgo(60)},
		{ID: "r2", Number: "14.071", Title: "Lei 14.071", Summary: "Altera o Código de Trânsito",
			Type: "lei", Scope: "federal", Authority: "Congresso Nacional", Status: "vigente",
			Tags: []string{"ctb"}, EffectiveDate: daysAgo(400)},
		{ID: "r3", Number: "59.000", Title: "Decreto municipal de patinetes", Summary: "Compartilhamento de patinetes",
			Type: "decreto", Scope: "municipal", Authority: "Prefeitura de São Paulo", Location: "São Paulo",
			Status: "vigente", Tags: []string{"patinete elétrico", "compartilhamento"}, EffectiveDate: daysAgo(100)},
		{ID: "r4", Number: "842", Title: "Resolução CONTRAN nº 842", Summary: "Norma anterior",
			Type: "resolucao", Scope: "federal", Authority: "CONTRAN", Status: "revogada",
			Tags: []string{"contran"}, EffectiveDate: daysAgo(800)},
	}
}

func testDeps(clock *fakeClock, cache driven.CacheStore, log *spyLogger) ProviderDeps {
	return ProviderDeps{
		Cache:        cache,
		Clock:        clock,
		Logger:       log,
		TTL:          domain.DefaultAppSettings().Cache.TTL,
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}
