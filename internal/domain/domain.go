package domain

import "github.com/yungbote/devroster-backend/internal/domain/developer"

type Developer = developer.Developer
type Framework = developer.Framework
