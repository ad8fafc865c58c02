package settings

import "github.com/fitconsult/fitfunnel/internal/model"

// Defaults returns the compiled-in configuration. Every structural field of
// the resolved settings exists here; cached or remote copies that predate a
// field fall back to these values during resolution.
func Defaults() model.Settings {
	return model.Settings{
		LandingPage: model.LandingPage{
			Title:               "DESTRAVE A QUEIMA DE GORDURA E SEQUE EM TEMPO RECORDE",
			Subtitle:            "Acesse 3 aulas gratuitas e descubra o método para transformar seu corpo de uma vez por todas, mesmo com pouco tempo para treinar.",
			VSLEnabled:          false,
			BeforeAndAfter:      []model.BeforeAndAfterImage{},
			BeforeAndAfterTitle: "Resultados Reais de Alunas Reais",
			BrandName:           "FitConsult",
			HeroTitleHighlight:  "Perca 15kg",
			HeroTitle:           "em 90 Dias",
			HeroSubtitle:        "Sem Dietas Restritivas",
			HeroDescription:     "Descubra o método científico que já transformou mais de 10.000 mulheres.",
			HeroImage:           "https://i.imgur.com/gWahM2y.png",
		},
		FreeClassesSection: model.FreeClassesSection{
			Title:    "3 Aulas Gratuitas Que Vão Mudar Sua Vida",
			Subtitle: "Acesse gratuitamente nosso conteúdo exclusivo e comece sua transformação hoje mesmo.",
			Classes: []model.FreeClass{
				{
					Title:       "Aula 1: Metabolismo Acelerado",
					Description: "Aprenda a acelerar seu metabolismo natural e queimar gordura 24 horas por dia.",
					Features:    []string{"Técnicas comprovadas cientificamente", "Queima de gordura otimizada"},
				},
				{
					Title:       "Aula 2: Alimentação Estratégica",
					Description: "Descubra como comer mais e ainda assim perder peso com nossa estratégia nutricional.",
					Features:    []string{"Sem contar calorias", "Receitas práticas"},
				},
				{
					Title:       "Aula 3: Mindset Vencedor",
					Description: "Transforme sua mente para manter os resultados para sempre e eliminar a autosabotagem.",
					Features:    []string{"Técnicas de motivação", "Hábitos duradouros"},
				},
			},
		},
		Coach: model.Coach{
			Name:  "Davids Lima",
			Bio:   "Há mais de 10 anos dedico minha vida a transformar corpos e vidas. Desenvolvi um método único e cientificamente comprovado que já ajudou mais de 5.000 mulheres a conquistarem o corpo dos seus sonhos.\n\nMinha missão é provar que toda mulher pode emagrecer de forma saudável e duradoura, sem dietas restritivas ou exercícios extremos.",
			Image: "https://i.imgur.com/sIqP9wQ.png",
			Certifications: []string{
				"Educação Física - CREF 123456-G/SP",
				"Especialização em Nutrição Esportiva",
				"Certificado em Treinamento Funcional",
				"Pós-graduação em Fisiologia do Exercício",
				"Especialista em Emagrecimento Feminino",
			},
		},
		Lessons: []model.Lesson{
			{ID: 1, ModuleID: "Módulo Gratuito", Title: "AULA 1: O Início da Transformação", Description: "Descubra os pilares para um emagrecimento definitivo e saudável.", VideoID: "dQw4w9WgXcQ", Thumbnail: "https://i.imgur.com/8m92n3T.png"},
			{ID: 2, ModuleID: "Módulo Gratuito", Title: "AULA 2: Treino Queima-Gordura", Description: "Um treino intenso e rápido para acelerar seu metabolismo ao máximo.", VideoID: "L_LUpnjgPso", Thumbnail: "https://i.imgur.com/gWahM2y.png"},
			{ID: 3, ModuleID: "Módulo Gratuito", Title: "AULA 3: Alimentação Inteligente", Description: "Aprenda a comer bem sem passar fome e continue perdendo peso.", VideoID: "3tmd-ClpJxA", Thumbnail: "https://i.imgur.com/k4Pk2A9.png"},
			{ID: 4, ModuleID: "Programa VIP", Title: "AVANÇADO: Ciclos de Carboidratos", Description: "Domine a técnica de ciclagem de carboidratos para resultados extremos.", VideoID: "GFQ3_h3sHCY", Thumbnail: "https://i.imgur.com/Xys41F7.png", Premium: true},
			{ID: 5, ModuleID: "Programa VIP", Title: "AVANÇADO: Treinamento com Pesos", Description: "Construa massa muscular magra e defina seu corpo.", VideoID: "GFQ3_h3sHCY", Thumbnail: "https://i.imgur.com/L8aD5fG.png", Premium: true},
			{ID: 6, ModuleID: "Programa VIP", Title: "MENTALIDADE: Foco Inabalável", Description: "Desenvolva uma mentalidade de campeã para nunca mais desistir.", VideoID: "GFQ3_h3sHCY", Thumbnail: "https://i.imgur.com/tYmCgA9.png", Premium: true},
		},
		Testimonials: []model.Testimonial{
			{
				Name:  "Maria S., 34 anos",
				Text:  "Eu não acreditava que seria possível, mas perdi 5kg no primeiro mês seguindo as aulas gratuitas! Mudou minha vida!",
				Image: "https://picsum.photos/seed/aluna1/100/100",
			},
			{
				Name:    "Juliana P., 28 anos",
				Text:    "O treino é rápido, intenso e cabe na minha rotina corrida. Finalmente algo que funciona pra mim. Recomendo demais!",
				Image:   "https://picsum.photos/seed/aluna2/100/100",
				VideoID: "3tmd-ClpJxA",
			},
			{
				Name:  "Carla M., 42 anos",
				Text:  "Finalmente entendi como me alimentar direito sem passar fome. As dicas são de ouro!",
				Image: "https://picsum.photos/seed/aluna3/100/100",
			},
		},
		UpsellPage: model.UpsellPage{
			VideoURL:   "https://www.youtube.com/embed/GFQ3_h3sHCY",
			FullPrice:  "R$497,00",
			PromoPrice: "R$197,00",
			Title:      "SEU PRÓXIMO PASSO PARA A TRANSFORMAÇÃO COMPLETA!",
			Subtitle:   "Você provou que é capaz. Agora, vamos acelerar seus resultados com minha consultoria premium.",
			Features: []string{
				"Acesso vitalício a todas as aulas VIP",
				"Treinos novos toda semana",
				"Acompanhamento nutricional personalizado",
				"Grupo exclusivo de alunas no WhatsApp",
				"Suporte direto comigo para tirar dúvidas",
			},
			MediaType:           "video",
			ImageURL:            "https://i.imgur.com/L8aD5fG.png",
			SubtitleNoMedia:     "Você provou que é capaz. Agora, vamos acelerar seus resultados com minha consultoria premium.",
			InstallmentsEnabled: true,
			InstallmentsNumber:  12,
			InstallmentsPrice:   "R$19,70",
			CTALink:             "https://checkout.com",
		},
		AI: model.AISettings{
			AssessmentFeedbackFallback: "Olá, {name}! Recebemos sua avaliação. Estamos muito animadas para começar esta jornada com você e te ajudar a alcançar seu objetivo. Sua primeira aula já está liberada. Vamos com tudo!",
		},
		FreeAccessDays:      7,
		OfferCountdownHours: 24,
	}
}
